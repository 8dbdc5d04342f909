// Package vendorhub is the client core of the vendor-management app: typed
// REST access to the vendor API, a persisted session, cached reads, and the
// domain services the screens call. The App is the composition root; build
// one at startup and hand its services to whatever needs them.
package vendorhub

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kadualabs/vendorhub/analytics"
	"github.com/kadualabs/vendorhub/auth"
	"github.com/kadualabs/vendorhub/pkg/cache"
	"github.com/kadualabs/vendorhub/pkg/config"
	"github.com/kadualabs/vendorhub/pkg/logger"
	"github.com/kadualabs/vendorhub/pkg/metrics"
	"github.com/kadualabs/vendorhub/pkg/rest"
	"github.com/kadualabs/vendorhub/pkg/session"
	"github.com/kadualabs/vendorhub/products"
	"github.com/kadualabs/vendorhub/profile"
	"github.com/kadualabs/vendorhub/verification"
)

// App bundles the wired client stack. Session is the single source of truth
// for authentication; the services share one API client and one query cache.
type App struct {
	Config  *config.Config
	Logger  *logger.Logger
	Session *session.Store
	Queries *cache.Queries

	Auth         auth.Service
	Profile      profile.Service
	Products     products.Service
	Verification verification.Service
	Analytics    analytics.Service

	api *rest.Client
}

// Option adjusts App construction.
type Option func(*settings)

type settings struct {
	registry prometheus.Registerer
}

// WithMetricsRegistry overrides where the API client metrics register,
// which tests use to avoid double registration on the default registry.
func WithMetricsRegistry(reg prometheus.Registerer) Option {
	return func(s *settings) {
		s.registry = reg
	}
}

// New wires the full stack from configuration: storage backend, session
// hydration, REST client with bearer injection, and every domain service.
// A 401 from any endpoint tears the session down.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	cfgOpts := settings{registry: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(&cfgOpts)
	}

	logg := logger.New(logger.Options{
		ServiceName: "vendorhub",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Output:      os.Stderr,
	})

	storage, err := session.OpenStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	sess := session.NewStore(storage, logg)
	sess.Hydrate(ctx)

	queries := cache.New()

	app := &App{
		Config:  cfg,
		Logger:  logg,
		Session: sess,
		Queries: queries,
	}

	api, err := rest.NewClient(cfg.API.BaseURL,
		rest.WithTimeout(cfg.API.Timeout),
		rest.WithTokenSource(sess),
		rest.WithLogger(logg),
		rest.WithMetrics(metrics.NewRequestMetrics(cfgOpts.registry)),
		rest.WithOnUnauthorized(app.onUnauthorized),
	)
	if err != nil {
		return nil, err
	}
	app.api = api

	app.Auth = auth.NewService(api, sess, queries, logg)
	app.Profile = profile.NewService(api, sess, queries, logg)
	app.Products = products.NewService(api, queries, logg)
	app.Verification = verification.NewService(api, queries, logg)
	app.Analytics = analytics.NewService(api, queries, logg)
	return app, nil
}

// onUnauthorized clears local state when the server rejects the token. The
// failing call still returns its UNAUTHORIZED error to the caller.
func (a *App) onUnauthorized(ctx context.Context) {
	a.Logger.Warn(ctx, "token rejected, clearing session")
	a.Queries.Reset()
	if err := a.Session.Logout(ctx); err != nil {
		a.Logger.Error(ctx, "clearing session after rejected token", err)
	}
}
