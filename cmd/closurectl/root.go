package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"closures/backend/internal/config"
)

type rootOptions struct {
	configFile string
	timezone   string
	verbose    bool

	cfg config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "closurectl",
		Short:         "Resolve closure presets and calculate recurring closures",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML config file (defaults to $CLOSURES_CONFIG)")
	cmd.PersistentFlags().StringVar(&opts.timezone, "tz", "", "time zone closures are resolved in (overrides config)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	cmd.AddCommand(newApplyCmd(opts), newRecurCmd(opts), newPresetsCmd(opts))
	return cmd
}

func (o *rootOptions) init(stderr io.Writer) error {
	var err error
	if o.configFile != "" {
		o.cfg, err = config.LoadFile(o.configFile)
	} else {
		o.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if tz := strings.TrimSpace(o.timezone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("invalid --tz %q: %w", tz, err)
		}
		o.cfg.Location = loc
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	o.log = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).With(
		slog.String("service", "closurectl"),
	)
	return nil
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTime accepts RFC 3339 or a local wall-clock time in loc.
func parseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q", s)
}

func formatTime(t time.Time) string {
	return t.Format("Mon 2006-01-02 15:04 MST")
}
