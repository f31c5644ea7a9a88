package main

import (
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"closures/backend/internal/domain"
	"closures/backend/internal/service/closures"
	"closures/backend/internal/store"
	"closures/backend/internal/store/memory"
)

func newApplyCmd(root *rootOptions) *cobra.Command {
	var (
		presetsPath string
		name        string
		start       string
		now         string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Resolve a preset from a YAML file into concrete closure times",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := root.cfg.Location

			opts := closures.Options{Location: loc, Logger: root.log}
			if now != "" {
				t, err := parseTime(now, loc)
				if err != nil {
					return fmt.Errorf("--now: %w", err)
				}
				opts.Clock = domain.FixedClock(t)
			}

			var current time.Time
			if start != "" {
				t, err := parseTime(start, loc)
				if err != nil {
					return fmt.Errorf("--start: %w", err)
				}
				current = t
			}

			inputs, err := readPresetFile(presetsPath)
			if err != nil {
				return err
			}
			repo := memory.NewPresetRepo()
			svc := closures.NewService(repo, opts)
			for _, in := range inputs {
				if _, err := svc.CreatePreset(cmd.Context(), in); err != nil {
					return fmt.Errorf("preset %q: %w", in.Name, err)
				}
			}

			preset, err := repo.FindByName(cmd.Context(), name)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no preset named %q in %s", name, presetsPath)
			}
			if err != nil {
				return err
			}

			res, err := svc.ResolveLoaded(preset, current)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				b, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(b))
				return err
			}
			if res.Description != "" {
				fmt.Fprintf(out, "description: %s\n", res.Description)
			}
			fmt.Fprintf(out, "start: %s\n", formatTime(res.Start))
			fmt.Fprintf(out, "end:   %s\n", formatTime(res.End))
			return nil
		},
	}

	cmd.Flags().StringVar(&presetsPath, "presets", "", "YAML preset file")
	cmd.Flags().StringVar(&name, "name", "", "preset name")
	cmd.Flags().StringVar(&start, "start", "", "start currently set on the closure (date the preset applies to)")
	cmd.Flags().StringVar(&now, "now", "", "pretend the current time is this instant")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("presets")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
