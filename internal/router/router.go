package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"guardian-backend/internal/handlers"
	"guardian-backend/internal/middleware"
	"guardian-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	contactHandler *handlers.ContactHandler,
	checkinHandler *handlers.CheckinHandler,
	sosHandler *handlers.SOSHandler,
	healthHandler *handlers.HealthHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))
	r.Use(middleware.Metrics)

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {

		r.Get("/health", healthHandler.Health)

		// ──── Auth Routes (public, rate limited per IP) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(httprate.LimitByIP(10, time.Minute))
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
			})
		})

		// ──── Contact Routes ────
		r.Route("/contacts", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", contactHandler.List)
			r.Post("/", contactHandler.Create)
			r.Put("/{id}", contactHandler.Update)
			r.Delete("/{id}", contactHandler.Delete)
		})

		// ──── Check-in Routes ────
		// Deliberately unauthenticated: the client contract sends the
		// userId in the body. Flagged for security review, not changed.
		r.Route("/checkin", func(r chi.Router) {
			r.Post("/start", checkinHandler.Start)
			r.Post("/cancel", checkinHandler.Cancel)
			r.Post("/trigger", checkinHandler.Trigger)
		})

		// ──── SOS Routes ────
		r.Route("/sos", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", sosHandler.Trigger)
			r.Get("/", sosHandler.List)
		})

		// ──── WebSocket alert feed ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
