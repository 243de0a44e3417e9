package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gradebook/internal/config"
	"gradebook/internal/devserver"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		addr       string
		configPath string
	)
	root := &cobra.Command{
		Use:          "gradebook-devserver",
		Short:        "In-memory remote gradebook backend for local development",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ep := config.DefaultConfig().Endpoints
			if configPath != "" {
				cfg, err := config.NewConfigService().LoadFromPath(configPath)
				if err != nil {
					return err
				}
				ep = cfg.Endpoints
			}
			return serve(cmd.Context(), addr, ep)
		},
	}
	root.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	root.Flags().StringVar(&configPath, "config", "", "take endpoint paths from this panel config file")
	return root
}

func serve(ctx context.Context, addr string, ep config.Endpoints) error {
	log := logrus.New()
	gin.SetMode(gin.ReleaseMode)

	srv := &http.Server{
		Addr:              addr,
		Handler:           devserver.NewRouter(devserver.NewSeededStore(), ep, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("starting dev backend")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		log.WithError(err).Error("dev backend failed")
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
