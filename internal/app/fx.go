package app

import (
	"context"
	"net/http"

	"github.com/mianvisuals/studio-api/internal/config"
	deliveryHTTP "github.com/mianvisuals/studio-api/internal/delivery/http"
	"github.com/mianvisuals/studio-api/internal/events"
	"github.com/mianvisuals/studio-api/internal/forms"
	"github.com/mianvisuals/studio-api/internal/instagram"
	"github.com/mianvisuals/studio-api/internal/logger"
	"github.com/mianvisuals/studio-api/internal/mailer"
	"github.com/mianvisuals/studio-api/internal/notifiers"
	"github.com/mianvisuals/studio-api/internal/scheduler"
	"github.com/mianvisuals/studio-api/internal/service"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// CommonModule provides the dispatch pipeline and its collaborators.
var CommonModule = fx.Options(
	fx.Provide(
		// Core components
		config.NewConfig,
		logger.NewLogger,
		events.NewBus,

		// Pipeline stages
		func(cfg *config.Config) *forms.Normalizer {
			return forms.NewNormalizer(forms.PhonePolicy(cfg.Forms.PhonePolicy))
		},
		forms.NewValidator,
		func(cfg *config.Config) *mailer.Formatter {
			return mailer.NewFormatter(cfg.Studio.Name)
		},

		// External sinks
		notifiers.NewDispatcher,
		func(d *notifiers.Dispatcher) notifiers.Notifier { return d },
		scheduler.NewScheduler,
		instagram.NewClient,

		// Service Layer
		service.NewDispatchService,
	),
)

// APIModule defines the Fx module for the HTTP API application.
var APIModule = fx.Options(
	CommonModule, // Include all shared components
	fx.Provide(
		// API-specific components
		deliveryHTTP.NewHandlers,
		deliveryHTTP.NewServer,
	),

	// Log every submission's terminal outcome. The subscription is released
	// on shutdown, so nothing leaks across application lifecycles.
	fx.Invoke(func(bus *events.Bus, log *zerolog.Logger, lc fx.Lifecycle) {
		subLog := log.With().Str("component", "submission_log").Logger()
		var unsubscribe func()
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				unsubscribe = bus.Subscribe(func(ev events.Submission) {
					subLog.Info().
						Stringer("submission_id", ev.ID).
						Str("kind", string(ev.Kind)).
						Str("outcome", string(ev.Outcome)).
						Str("event_id", ev.EventID).
						Msg("submission completed")
				})
				return nil
			},
			OnStop: func(ctx context.Context) error {
				if unsubscribe != nil {
					unsubscribe()
				}
				return nil
			},
		})
	}),

	fx.Invoke(func(server *deliveryHTTP.Server, lc fx.Lifecycle) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go func() {
					if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						panic(err)
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return server.Shutdown(ctx)
			},
		})
	}),
)
