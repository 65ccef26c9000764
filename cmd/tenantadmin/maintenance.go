package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/tenantadmin/internal/testdata"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and seed the default plans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openLocal(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "database ready at %s\n", cfg.Database.Path)
			return nil
		},
	}
}

func newSeedCommand() *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Register demo tenants in the local database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := requireLocal(cfg, "seed"); err != nil {
				return err
			}
			store, err := openLocal(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			n, err := testdata.Seed(cmd.Context(), store.registry, seed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d demo tenants\n", n)
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for generated values (default: time based)")
	return cmd
}

func newResetCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every tenant and subscription from the local database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to reset without --yes")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := requireLocal(cfg, "reset"); err != nil {
				return err
			}
			store, err := openLocal(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.maintenance.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "tenants removed")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
