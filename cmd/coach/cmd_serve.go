package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zhouzirui/empathic-coach/client/internal/handler"
	"github.com/zhouzirui/empathic-coach/client/internal/view/web"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the companion server for the pricing and payment pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pages, err := web.NewRenderer()
			if err != nil {
				return err
			}

			router := handler.NewRouter(handler.Dependencies{
				Plans:        a.plans,
				Backend:      a.client,
				Profile:      a.profile(),
				Pages:        pages,
				Logger:       a.logger.Named("http"),
				Metrics:      a.metrics,
				AllowOrigins: []string{a.cfg.Server.PublicURL},
			})

			srv := &http.Server{
				Addr:              a.cfg.Server.Addr,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
				IdleTimeout:       120 * time.Second,
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				a.logger.Info("companion server listening",
					zap.String("addr", srv.Addr),
					zap.String("public_url", a.cfg.Server.PublicURL),
					zap.String("success_url", a.cfg.Server.PublicURL+"/payment-success?session_id={CHECKOUT_SESSION_ID}"),
				)
				return runServer(ctx, srv)
			})
			g.Go(func() error {
				probeBackend(ctx, a)
				return nil
			})
			return g.Wait()
		},
	}
}

// probeBackend logs whether the backend answers; the server runs either way.
func probeBackend(ctx context.Context, a *app) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	health, err := a.client.Health(ctx)
	if err != nil {
		a.logger.Warn("backend unreachable, checkout will fail until it is up",
			zap.String("api_url", a.client.BaseURL()), zap.Error(err))
		return
	}
	a.logger.Info("backend reachable", zap.String("api_url", a.client.BaseURL()), zap.String("status", health.Status))
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
