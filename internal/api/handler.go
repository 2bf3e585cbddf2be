package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/pingcraft/pingcraft/internal/storage"
	"github.com/pingcraft/pingcraft/internal/tracker"
	"github.com/pingcraft/pingcraft/pkg/pingcraft"
)

func getServersHandler(t *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results := t.Results()
		dtos := make([]storage.Observation, len(results))
		for i, res := range results {
			dtos[i] = res.Observation
		}
		render.JSON(w, r, dtos)
	}
}

func getServerHandler(t *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		res, ok := t.Result(name)
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		render.JSON(w, r, res.Observation)
	}
}

func getServerFaviconHandler(t *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		res, ok := t.Result(name)
		if !ok || len(res.Favicon) == 0 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(res.Favicon)
	}
}

func getServerHistoryHandler(repo *storage.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		history, err := repo.History(name, 100)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if len(history) == 0 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		render.JSON(w, r, history)
	}
}

func getPingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		addr := r.URL.Query().Get("addr")
		if addr == "" {
			http.Error(w, "missing addr parameter", http.StatusUnprocessableEntity)
			return
		}

		pong, err := pingcraft.PingAddr(r.Context(), addr)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		dto := struct {
			Version   string `json:"version"`
			Protocol  int    `json:"protocol"`
			Players   int    `json:"players"`
			MaxPlayer int    `json:"maxPlayers"`
			MOTD      string `json:"motd"`
			LatencyMs int64  `json:"latencyMs"`
		}{
			Version:   pong.Version,
			Protocol:  pong.Protocol,
			Players:   pong.OnlinePlayers,
			MaxPlayer: pong.MaxPlayers,
			MOTD:      pong.MOTD,
			LatencyMs: pong.Latency.Milliseconds(),
		}
		render.JSON(w, r, dto)
	}
}
