package http

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed)

	router.Get("/health", h.health)

	// credential endpoints are rate limited per client IP to slow down
	// online guessing and enumeration attempts
	authLimiter := httprate.LimitByIP(
		h.cfg.AuthRateLimit,
		time.Duration(h.cfg.AuthRateWindow)*time.Second,
	)

	router.Route("/api/v1/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authLimiter)
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.Post("/forgot-password", h.forgotPassword)
			r.Post("/reset-password", h.resetPassword)
		})

		r.Post("/logout", h.logout)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/me", h.me)
			r.Post("/change-password", h.changePassword)
		})
	})

	router.Route("/api/v1/users", func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.requireAdmin)
		r.Get("/", h.listUsers)
		r.Put("/{id}", h.updateUser)
		r.Delete("/{id}", h.deleteUser)
	})

	return router
}
