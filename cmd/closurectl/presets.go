package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"closures/backend/internal/service/closures"
	"closures/backend/internal/store/postgres"
)

func newPresetsCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage presets stored in the configured database",
	}
	cmd.AddCommand(newPresetsImportCmd(root), newPresetsListCmd(root))
	return cmd
}

// withService opens the configured database, migrates it when enabled and
// runs fn with a service backed by it.
func withService(ctx context.Context, root *rootOptions, fn func(*closures.Service) error) error {
	db, err := postgres.Open(ctx, root.cfg.DatabaseURL, postgres.PoolConfig{
		MaxOpenConns: 2,
		SlowQuery:    root.cfg.DBSlowQuery,
		Logger:       root.log,
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := postgres.Close(db); err != nil {
			root.log.Warn("database close failed", "err", err)
		}
	}()

	if root.cfg.MigrateOnStart {
		if err := postgres.Migrate(ctx, db, root.log); err != nil {
			return err
		}
	}
	svc := closures.NewService(postgres.NewPresetRepo(db), closures.Options{Location: root.cfg.Location, Logger: root.log})
	return fn(svc)
}

func newPresetsImportCmd(root *rootOptions) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Create every preset of a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readPresetFile(path)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			return withService(ctx, root, func(svc *closures.Service) error {
				for _, in := range inputs {
					p, err := svc.CreatePreset(ctx, in)
					if err != nil {
						return fmt.Errorf("preset %q: %w", in.Name, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "imported %d %s\n", p.ID, p.Name)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "YAML preset file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newPresetsListCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			return withService(ctx, root, func(svc *closures.Service) error {
				presets, err := svc.ListPresets(ctx)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tEND\tDESCRIPTION")
				for _, p := range presets {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Name, p.ClosureDetails.End.Type, p.Description)
				}
				return tw.Flush()
			})
		},
	}
}
