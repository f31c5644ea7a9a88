package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"closures/backend/internal/domain"
	"closures/backend/internal/ics"
	"closures/backend/internal/service/closures"
)

type recurOptions struct {
	start       string
	end         string
	icsOut      bool
	summary     string
	description string
}

func newRecurCmd(root *rootOptions) *cobra.Command {
	opts := &recurOptions{}

	cmd := &cobra.Command{
		Use:   "recur",
		Short: "Split a timeframe into recurring closures",
	}
	cmd.PersistentFlags().StringVar(&opts.start, "start", "", "start of the overall timeframe")
	cmd.PersistentFlags().StringVar(&opts.end, "end", "", "end of the overall timeframe")
	cmd.PersistentFlags().BoolVar(&opts.icsOut, "ics", false, "print an iCalendar feed instead of a list")
	cmd.PersistentFlags().StringVar(&opts.summary, "summary", "Closure", "event summary used with --ics")
	cmd.PersistentFlags().StringVar(&opts.description, "description", "", "event description used with --ics")
	_ = cmd.MarkPersistentFlagRequired("start")
	_ = cmd.MarkPersistentFlagRequired("end")

	cmd.AddCommand(newRecurDailyCmd(root, opts), newRecurIntervalCmd(root, opts))
	return cmd
}

func newRecurDailyCmd(root *rootOptions, opts *recurOptions) *cobra.Command {
	var days string

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Repeat the timeframe's hours on selected weekdays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := domain.ParseWeekdays(days)
			if err != nil {
				return fmt.Errorf("--days: %w", err)
			}
			in, err := opts.input(root, domain.RecurringModeDaily)
			if err != nil {
				return err
			}
			in.Daily = &closures.DailyInput{Days: flags.Days()}
			return opts.run(cmd, root, in)
		},
	}
	cmd.Flags().StringVar(&days, "days", "mon,tue,wed,thu,fri,sat,sun", "comma separated weekdays")
	return cmd
}

func newRecurIntervalCmd(root *rootOptions, opts *recurOptions) *cobra.Command {
	var (
		duration int
		interval int
		anchor   string
	)

	cmd := &cobra.Command{
		Use:   "interval",
		Short: "Emit fixed-length closures separated by a fixed interval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := opts.input(root, domain.RecurringModeInterval)
			if err != nil {
				return err
			}
			in.Interval = &domain.IntervalFields{
				ClosureDuration:         &duration,
				IntervalBetweenClosures: &interval,
				AnchorPoint:             domain.IntervalAnchorPoint(anchor),
			}
			return opts.run(cmd, root, in)
		},
	}
	cmd.Flags().IntVar(&duration, "duration", 0, "closure duration in minutes")
	cmd.Flags().IntVar(&interval, "interval", 0, "minutes between closures")
	cmd.Flags().StringVar(&anchor, "anchor", string(domain.AnchorDefault), "DEFAULT, START_OF_PREVIOUS_CLOSURE or END_OF_PREVIOUS_CLOSURE")
	_ = cmd.MarkFlagRequired("duration")
	return cmd
}

func (o *recurOptions) input(root *rootOptions, mode domain.RecurringModeID) (closures.RecurringInput, error) {
	loc := root.cfg.Location
	start, err := parseTime(o.start, loc)
	if err != nil {
		return closures.RecurringInput{}, fmt.Errorf("--start: %w", err)
	}
	end, err := parseTime(o.end, loc)
	if err != nil {
		return closures.RecurringInput{}, fmt.Errorf("--end: %w", err)
	}
	return closures.RecurringInput{Mode: mode, StartDate: start, EndDate: end}, nil
}

func (o *recurOptions) run(cmd *cobra.Command, root *rootOptions, in closures.RecurringInput) error {
	svc := closures.NewService(nil, closures.Options{Location: root.cfg.Location, Logger: root.log})
	times, err := svc.CalculateRecurring(cmd.Context(), in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if o.icsOut {
		cal, err := ics.Export(times.Timeframes, ics.ExportOptions{Summary: o.summary, Description: o.description})
		if err != nil {
			return err
		}
		_, err = out.Write(cal)
		return err
	}
	return printTimeframes(out, times.Timeframes)
}

func printTimeframes(w io.Writer, timeframes []domain.Timeframe) error {
	if len(timeframes) == 0 {
		_, err := fmt.Fprintln(w, "no closures")
		return err
	}
	for i, tf := range timeframes {
		if _, err := fmt.Fprintf(w, "%3d  %s  ->  %s\n", i+1, formatTime(tf.StartDate), formatTime(tf.EndDate)); err != nil {
			return err
		}
	}
	return nil
}
