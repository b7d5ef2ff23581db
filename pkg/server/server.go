package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/de-tools/audit-atlas/pkg/handlers/analytics"
	"github.com/de-tools/audit-atlas/pkg/handlers/findings"
	"github.com/de-tools/audit-atlas/pkg/handlers/plans"
	auditatlasmiddleware "github.com/de-tools/audit-atlas/pkg/server/middleware"
	"github.com/de-tools/audit-atlas/pkg/services/directory"
	"github.com/de-tools/audit-atlas/pkg/services/lifecycle"
	"github.com/de-tools/audit-atlas/pkg/services/notify"
	"github.com/de-tools/audit-atlas/pkg/store/memory/actionplans"
	auditplanstore "github.com/de-tools/audit-atlas/pkg/store/memory/auditplans"
	findingstore "github.com/de-tools/audit-atlas/pkg/store/memory/findings"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
	config Config
}

type Dependencies struct {
	Engine      *lifecycle.Engine
	PlanEngine  *lifecycle.PlanEngine
	Findings    findingstore.Store
	ActionPlans actionplans.Store
	AuditPlans  auditplanstore.Store
	Directory   *directory.Directory
	Feed        *notify.Feed
	Logger      zerolog.Logger
}

type Config struct {
	Addr             string
	ShutdownTimeout  time.Duration
	TATThresholdDays int
	Dependencies     Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	deps := config.Dependencies
	findingsHandler := findings.NewHandler(deps.Engine, deps.Findings, deps.ActionPlans)
	plansHandler := plans.NewHandler(deps.PlanEngine, deps.AuditPlans)
	analyticsHandler := analytics.NewHandler(
		deps.Findings,
		deps.ActionPlans,
		deps.Directory,
		deps.Feed,
		config.TATThresholdDays,
	)

	router := chi.NewRouter()

	router.Use(auditatlasmiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/findings", func(r chi.Router) {
			r.Get("/", findingsHandler.List)
			r.Post("/", findingsHandler.Create)
			r.Get("/{id}", findingsHandler.Get)
			r.Put("/{id}", findingsHandler.Edit)
			r.Post("/{id}/plan", findingsHandler.SubmitPlan)
			r.Post("/{id}/approve", findingsHandler.Approve)
			r.Post("/{id}/reject", findingsHandler.Reject)
			r.Get("/{id}/plans", findingsHandler.PlanHistory)
		})

		r.Route("/plans", func(r chi.Router) {
			r.Get("/", plansHandler.List)
			r.Post("/", plansHandler.Create)
			r.Get("/{id}", plansHandler.Get)
			r.Put("/{id}", plansHandler.Edit)
			r.Post("/{id}/advance", plansHandler.Advance)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/summary", analyticsHandler.Summary)
			r.Get("/managers", analyticsHandler.Managers)
			r.Get("/managers/export", analyticsHandler.ExportManagers)
			r.Get("/heads", analyticsHandler.DepartmentHeads)
			r.Get("/rollup", analyticsHandler.Rollup)
			r.Get("/departments", analyticsHandler.Departments)
			r.Get("/processes", analyticsHandler.Processes)
			r.Get("/tat", analyticsHandler.TAT)
		})

		r.Get("/notifications", analyticsHandler.Notifications)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	return &WebAPI{
		router: router,
		logger: &logger,
		config: config,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		timeout := w.config.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
