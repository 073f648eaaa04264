package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	FunctionPath = "/.netlify/functions/create-checkout-session"
	LegacyPath   = "/create-checkout-session"
)

type RouterConfig struct {
	// Metrics is mounted on GET /metrics when set.
	Metrics http.Handler
	// StaticDir is served on / when set, so the success and cancel pages
	// resolve locally.
	StaticDir string
}

func NewRouter(h *Handler, cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RecoverJSON)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Handle(FunctionPath, h)
	r.Handle(LegacyPath, h)

	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return r
}

// RecoverJSON turns a panic anywhere below it into the generic JSON 500.
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				slog.Error("recovered from panic",
					"error", fmt.Sprint(rec),
					"request_id", middleware.GetReqID(r.Context()),
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(fallbackErrorBody + "\n"))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
