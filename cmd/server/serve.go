package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fieldwatch/app"
	"fieldwatch/database"
	"fieldwatch/pkg/storage"
)

func serveCommand(rt *cliEnv) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				rt.cfg.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db, err := database.OpenSQLite(rt.cfg.DBPath)
			if err != nil {
				return err
			}
			store, err := storage.Open(ctx, rt.cfg, rt.log)
			if err != nil {
				return err
			}
			a, err := app.New(rt.cfg, db, store, rt.log, nil)
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				rt.log.Info("listening", zap.String("port", rt.cfg.Port), zap.String("auth", rt.cfg.AuthMode))
				errCh <- a.Echo.Start(":" + rt.cfg.Port)
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			rt.log.Info("shutting down")
			shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return a.Echo.Shutdown(shutCtx)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}
