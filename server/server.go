// Package server wires stores, services and controllers into a fiber app.
package server

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/oklog/ulid/v2"
	"github.com/uptrace/bun"

	auth "github.com/goliatone/go-auth-api"
	"github.com/goliatone/go-auth-api/audit"
	"github.com/goliatone/go-auth-api/calculator"
	"github.com/goliatone/go-auth-api/company"
	"github.com/goliatone/go-auth-api/config"
	"github.com/goliatone/go-auth-api/metrics"
	"github.com/goliatone/go-auth-api/middleware/jwtware"
	"github.com/goliatone/go-auth-api/repository"
)

// APIPrefix is the mount point of every application route
const APIPrefix = "/api"

// Server holds the fiber app and the services behind it
type Server struct {
	App       *fiber.App
	Repo      *repository.Manager
	Auther    *auth.Auther
	Audit     *audit.Service
	Metrics   *metrics.Sink
	Activity  *auth.ActivityEmitter
	Protected fiber.Handler
}

type Option func(*options)

type options struct {
	logger     auth.Logger
	accessLog  bool
	onActivity func()
	hasher     auth.PasswordHasher
}

// WithLogger sets the application logger
func WithLogger(l auth.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithAccessLog toggles the fiber request logger
func WithAccessLog(enabled bool) Option {
	return func(o *options) { o.accessLog = enabled }
}

// WithActivityDone registers a callback run after every background
// activity write.
func WithActivityDone(fn func()) Option {
	return func(o *options) { o.onActivity = fn }
}

// WithPasswordHasher replaces the bcrypt hasher built from config
func WithPasswordHasher(h auth.PasswordHasher) Option {
	return func(o *options) { o.hasher = h }
}

// New builds the application on an already migrated db
func New(cfg config.Config, db *bun.DB, opts ...Option) *Server {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = auth.NewSlogLogger(nil)
	}

	repo := repository.NewRepositoryManager(db, auth.WithDeterministicIDs(cfg.GetDeterministicIDs()))
	repo.MustValidate()

	auditService := audit.NewService(repo.Audits())
	metricsSink := metrics.NewSink()

	activity := auth.NewActivityEmitter(auth.MultiActivitySink{
		audit.NewSink(auditService),
		metricsSink,
	}, o.logger)
	if o.onActivity != nil {
		activity.WithDone(o.onActivity)
	}

	hasher := o.hasher
	if hasher == nil {
		hasher = auth.NewBcryptHasher(cfg.GetPasswordCost())
	}

	tokens := auth.NewTokenServiceFromConfig(cfg, o.logger)
	auther := auth.NewAuthenticator(repo.Users(), hasher, tokens).
		WithLogger(o.logger).
		WithActivityEmitter(activity)

	protected := jwtware.New(jwtware.Config{
		IdentityResolver: auther,
		Logger:           o.logger,
	})

	app := fiber.New(fiber.Config{
		AppName:      "go-auth-api",
		ErrorHandler: auth.NewErrorHandler(o.logger, cfg.GetDebug()),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: newRequestID(),
	}))
	if o.accessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		}))
	}

	metrics.RegisterRoutes(app, metricsSink)

	api := app.Group(APIPrefix)

	auth.RegisterAuthRoutes(api, protected,
		auth.WithAuthenticator(auther),
		auth.WithControllerLogger(o.logger),
		auth.WithControllerDebug(cfg.GetDebug()),
	)

	calculator.RegisterRoutes(api, calculator.NewController(calculator.NewService(activity), o.logger))

	types := company.NewTypeService(repo.CompanyTypes(), activity)
	companies := company.NewService(repo.Companies(), repo.CompanyTypes(), activity).
		WithPhoneRegion(cfg.GetPhoneRegion())
	company.RegisterRoutes(api, company.NewController(companies, types, o.logger), protected)

	audit.RegisterRoutes(api, audit.NewController(auditService, o.logger), protected)

	return &Server{
		App:       app,
		Repo:      repo,
		Auther:    auther,
		Audit:     auditService,
		Metrics:   metricsSink,
		Activity:  activity,
		Protected: protected,
	}
}

// newRequestID returns a ULID generator safe for concurrent requests
func newRequestID() func() string {
	var mu sync.Mutex
	entropy := ulid.Monotonic(rand.Reader, 0)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), entropy).String()
	}
}
