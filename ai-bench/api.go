package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func (b *bench) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/api/bench/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "running": b.getStatus().Running})
	})
	r.Get("/api/bench/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, b.getStatus())
	})
	r.Post("/api/bench/start", func(w http.ResponseWriter, r *http.Request) {
		if err := b.startBench(); err != nil {
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, b.getStatus())
	})
	r.Post("/api/bench/stop", func(w http.ResponseWriter, r *http.Request) {
		if err := b.stopBench("requested via api"); err != nil {
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, b.getStatus())
	})
	return r
}

func (b *bench) startStatusAPI() *http.Server {
	server := &http.Server{Addr: b.apiAddr, Handler: b.routes()}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("bench-api-server-error")
		}
	}()
	return server
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
