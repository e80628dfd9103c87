package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fieldwatch/config"
	"fieldwatch/pkg/logging"
)

// cliEnv is filled by the root command before any subcommand runs.
type cliEnv struct {
	cfg config.AppConfig
	log *zap.Logger
}

func rootCommand() *cobra.Command {
	rt := &cliEnv{}
	var dbPath string

	root := &cobra.Command{
		Use:           "fieldwatch",
		Short:         "Farm monitoring backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, warn := config.Load()
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			log, err := logging.New(cfg.LogLevel, cfg.LogDev)
			if err != nil {
				return err
			}
			if warn != nil {
				log.Warn(".env not loaded", zap.Error(warn))
			}
			rt.cfg, rt.log = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.log != nil {
				_ = rt.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite file (overrides DB_PATH)")

	root.AddCommand(serveCommand(rt), seedCommand(rt), classifyCommand())
	return root
}

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
