package main

import (
	"compress/flate"
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
)

const (
	contentType     = "Content-Type"
	contentTypeJSON = "application/json"

	contentTypeJSONUTF8 = contentTypeJSON + "; charset=utf-8"
)

func (a *postPilot) startServer() (err error) {
	var logMiddleware func(next http.Handler) http.Handler
	if a.cfg.Server.Logging {
		f, err := os.OpenFile(a.cfg.Server.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		a.shutdown.Add(func() {
			_ = f.Close()
		})
		logMiddleware = func(next http.Handler) http.Handler {
			lh := handlers.CombinedLoggingHandler(f, next)
			return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
				// Remove remote address for privacy
				r.RemoteAddr = "127.0.0.1"
				lh.ServeHTTP(rw, r)
			})
		}
	}

	a.d = a.buildRouter(logMiddleware)

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(a.cfg.Server.Port),
		Handler:           a.d,
		ReadHeaderTimeout: 1 * time.Minute,
	}
	a.shutdown.Add(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
		a.info("HTTP server stopped")
	})
	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return err
	}
	a.info("HTTP server listening", "addr", listener.Addr().String())
	if err = server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *postPilot) buildRouter(logMiddleware func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	if logMiddleware != nil {
		r.Use(logMiddleware)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(flate.DefaultCompression))
	r.Use(middleware.GetHead)
	r.Use(middleware.NoCache)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", a.serveAnalyze)
		r.Post("/generate", a.serveGenerate)
		r.Post("/schedule", a.serveSchedule)
		r.Get("/posts", a.servePosts)
		r.Get("/stats", a.serveStats)
	})

	return r
}
