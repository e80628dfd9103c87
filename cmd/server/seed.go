package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"fieldwatch/app"
	"fieldwatch/database"
	"fieldwatch/pkg/middleware"
	"fieldwatch/pkg/seed"
)

func seedCommand(rt *cliEnv) *cobra.Command {
	var user string
	var value uint64
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create demo fields, readings, alerts and a job for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.OpenSQLite(rt.cfg.DBPath)
			if err != nil {
				return err
			}
			counts, err := seed.New(db, rt.log, value).Seed(cmd.Context(), user, time.Now())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(counts)
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", middleware.DefaultUser, "owner of the demo data")
	cmd.Flags().Uint64Var(&value, "rand-seed", app.SeedValue, "random seed for sensor values")
	return cmd
}
