package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/shiftcrew/shiftcrew/internal/config"
	"github.com/shiftcrew/shiftcrew/internal/invoice"
	"github.com/shiftcrew/shiftcrew/internal/rating"
	"github.com/shiftcrew/shiftcrew/internal/repository"
	"github.com/shiftcrew/shiftcrew/internal/schedule"
	"github.com/shiftcrew/shiftcrew/internal/store"
)

// Server wires HTTP routing, middleware, and handlers.
type Server struct {
	cfg       config.Config
	store     *store.Store
	repo      *repository.Repository
	engine    *rating.Engine
	invoices  *invoice.Aggregator
	scheduler *schedule.Scheduler
	logger    *zap.Logger
	router    chi.Router
	httpSrv   *http.Server
}

// New constructs the HTTP server with base middleware and routes.
func New(cfg config.Config, st *store.Store, repo *repository.Repository, engine *rating.Engine, invoices *invoice.Aggregator, scheduler *schedule.Scheduler, logger *zap.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:       cfg,
		store:     st,
		repo:      repo,
		engine:    engine,
		invoices:  invoices,
		scheduler: scheduler,
		logger:    logger,
		router:    r,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", s.handleHealthz)

	s.router.Route("/assignments", func(r chi.Router) {
		r.Get("/", s.handleListAssignments)
		r.Post("/", s.handleCreateAssignment)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetAssignment)
			r.Put("/job-rating", s.handleGradeAssignment)
			r.Put("/work-ratings", s.handleWorkRatings)
		})
	})

	s.router.Route("/invoices", func(r chi.Router) {
		r.Get("/", s.handleListInvoices)
		r.Get("/{companyId}", s.handleInvoiceDetails)
	})

	s.router.Route("/jobs", func(r chi.Router) {
		r.Get("/", s.handleListJobs)
		r.Post("/", s.handleCreateJob)
		r.Get("/ratings", s.handleJobRatingReport)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetJob)
			r.Put("/", s.handleUpdateJob)
			r.Post("/schedule", s.handleScheduleJob)
		})
	})

	s.router.Route("/companies", func(r chi.Router) {
		r.Get("/", s.handleListCompanies)
		r.Post("/", s.handleCreateCompany)
		r.Get("/{id}", s.handleGetCompany)
		r.Put("/{id}", s.handleUpdateCompany)
	})

	s.router.Route("/skills", func(r chi.Router) {
		r.Get("/", s.handleListSkills)
		r.Post("/", s.handleCreateSkill)
		r.Get("/{id}", s.handleGetSkill)
		r.Put("/{id}", s.handleUpdateSkill)
	})

	s.router.Route("/labourers", func(r chi.Router) {
		r.Get("/", s.handleListLabourers)
		r.Post("/", s.handleCreateLabourer)
		r.Get("/{id}", s.handleGetLabourer)
		r.Put("/{id}", s.handleUpdateLabourer)
	})
}

// Start boots the HTTP server asynchronously.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.IdleTimeoutSecs) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.HealthCheck(ctx); err != nil {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
