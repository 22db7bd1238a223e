package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/roastery/internal/http/client"
	"github.com/MrJamesThe3rd/roastery/internal/http/delivery"
	"github.com/MrJamesThe3rd/roastery/internal/http/invoice"
	"github.com/MrJamesThe3rd/roastery/internal/http/stats"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	// Authenticate guards every /api route. Nil leaves the API open.
	Authenticate   func(http.Handler) http.Handler
	AllowedOrigins []string
	Health         Pinger
}

func New(
	opts Options,
	statsV1 *stats.Handler,
	clientsV1 *client.Handler,
	invoicesV1 *invoice.Handler,
	deliveriesV1 *delivery.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", healthz(opts.Health))

	router.Group(func(r chi.Router) {
		if opts.Authenticate != nil {
			r.Use(opts.Authenticate)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			statsV1.Routes(r)
			clientsV1.Routes(r)
			invoicesV1.Routes(r)
			deliveriesV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("multipart/form-data"))
			clientsV1.ImportRoutes(r)
		})
	})

	return router
}

func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.PingContext(ctx); err != nil {
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}
