package main

import (
	"Go2NetTemplates/internal/api"
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	flags := &runFlags{}
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve <capture>",
		Short: "Classify a capture and serve its templates over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, result, logger, err := flags.run(cmd, args[0])
			if err != nil {
				return err
			}
			defer logger.Sync()

			if cmd.Flags().Changed("listen") {
				cfg.API.ListenAddr = listenAddr
			}
			server := &http.Server{
				Addr:    cfg.API.ListenAddr,
				Handler: api.NewRouter(result.Report, cfg.Report.MaxWidth, logger),
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("API server starting", zap.String("addr", server.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
				close(errCh)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case err := <-errCh:
				return err
			case <-quit:
			}
			logger.Info("API server shutting down")

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(ctx)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&listenAddr, "listen", ":8080", "HTTP listen address")
	return cmd
}
