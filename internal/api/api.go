// Package api exposes tracked server status over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pingcraft/pingcraft/internal/storage"
	"github.com/pingcraft/pingcraft/internal/tracker"
)

type Server struct {
	Bind    string
	Tracker *tracker.Tracker
	Repo    *storage.Repository
	Logger  zerolog.Logger
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.Logger))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/servers", getServersHandler(s.Tracker))
		r.Get("/servers/{name}", getServerHandler(s.Tracker))
		r.Get("/servers/{name}/favicon", getServerFaviconHandler(s.Tracker))
		if s.Repo != nil {
			r.Get("/servers/{name}/history", getServerHistoryHandler(s.Repo))
		}
		r.Get("/ping", getPingHandler())
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// ListenAndServe serves the API until the context is canceled, then
// shuts the listener down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Bind,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.Logger.Info().
			Str("bind", s.Bind).
			Msg("starting http listener")
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errChan; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("handled request")
		})
	}
}
