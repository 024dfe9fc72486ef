package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/defect-atlas/pkg/handlers/inspection"
	atlasmiddleware "github.com/de-tools/defect-atlas/pkg/server/middleware"
	"github.com/de-tools/defect-atlas/pkg/services/source"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          http.Handler
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Source   source.Source
	Ingestor handlers.Ingestor
	Syncs    handlers.SyncReporter
	Events   http.Handler
	Logger   zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	MaxUploadBytes  int64
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) http.Handler {
	deps := config.Dependencies
	h := handlers.NewHandler(deps.Source, deps.Ingestor, deps.Syncs, config.MaxUploadBytes)

	router := chi.NewRouter()
	router.Use(atlasmiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)

	// Path used by the existing dashboard frontend.
	router.Get("/api/inspection", h.GetInspection)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/inspection", h.GetInspection)
		r.Get("/summary/booth", h.GetBoothSummary)
		r.Get("/summary/time", h.GetTimeSummary)
		r.Get("/summary/defect-area", h.GetDefectAreaSummary)
		r.Get("/charts/{view}.png", h.GetChart)
		r.Post("/imports", h.PostImport)
		r.Get("/imports", h.ListImports)
		r.Get("/sync", h.ListSyncStates)
		if deps.Events != nil {
			r.Handle("/events", deps.Events)
		}
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	logger := config.Dependencies.Logger

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: timeout,
	}
}

// Start serves until the process receives SIGINT or SIGTERM, then drains
// outstanding requests.
func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
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
