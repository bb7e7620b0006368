// Package health реализует HTTP-обработчик проверки живости сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/microlend/microloan/internal/http/response"
	"github.com/microlend/microloan/internal/lib/sl"
)

// Database проверяет готовность базы данных.
type Database interface {
	Ready() error
}

// Broker сообщает состояние соединения с брокером сообщений.
type Broker interface {
	IsClosed() bool
}

// Cache проверяет доступность кеша.
type Cache interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	log    *slog.Logger
	db     Database
	broker Broker
	cache  Cache
}

func New(log *slog.Logger, db Database, broker Broker, cache Cache) *Handler {
	return &Handler{
		log:    log,
		db:     db,
		broker: broker,
		cache:  cache,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ready(); err != nil {
		h.log.Error("database is not ready", sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database is not ready"))
		return
	}

	if h.broker.IsClosed() {
		h.log.Error("message broker connection is closed")
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("message broker is not ready"))
		return
	}

	if err := h.cache.Ping(r.Context()); err != nil {
		h.log.Error("cache is not ready", sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("cache is not ready"))
		return
	}

	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"status": "ok",
	}))
}
