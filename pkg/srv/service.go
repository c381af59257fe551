// Package srv runs long-lived services and sequences their shutdown.
package srv

import (
	"context"

	"github.com/duetsim/duet/pkg/log"
)

// Service is anything with a blocking Start and an idempotent Shutdown.
type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// StartServices launches every service in its own goroutine. Any start
// error is fatal.
func StartServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for _, svc := range services {
		go func(svc Service) {
			if err := svc.Start(ctx); err != nil {
				logger.Fatal().Err(err).Msgf("%T failed to start", svc)
			}
		}(svc)
	}
}

// ShutdownServices blocks until the context ends, then shuts services down
// in slice order. Shutdown errors are logged, not propagated.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()
	logger := log.FromCtx(ctx)
	for _, svc := range services {
		if err := svc.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msgf("%T failed to shutdown", svc)
		}
	}
}
