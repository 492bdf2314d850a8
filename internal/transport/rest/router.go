package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/leave-management/internal/auth"
	"github.com/frahmantamala/leave-management/internal/calendar"
	"github.com/frahmantamala/leave-management/internal/leave"
	"github.com/frahmantamala/leave-management/internal/manager"
	"github.com/frahmantamala/leave-management/internal/notification"
	"github.com/frahmantamala/leave-management/internal/transport/middleware"
	"github.com/frahmantamala/leave-management/internal/transport/swagger"
)

// RegisterAllRoutes wires the HTTP surface. The login boundary is public;
// everything behind the calendar view requires an authenticated manager.
func RegisterAllRoutes(
	router *chi.Mux,
	store StoreChecker,
	storageDriver string,
	authHandler *auth.Handler,
	managerHandler *manager.Handler,
	leaveHandler *leave.Handler,
	calendarHandler *calendar.Handler,
	notificationHandler *notification.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(store, storageDriver)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec and Swagger UI at root, outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
			sr.Post("/logout", authHandler.Logout)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Get("/managers/me", managerHandler.GetCurrentManager)

			pr.Route("/leaves", func(lr chi.Router) {
				lr.Get("/", calendarHandler.GetEvents)  // GET /leaves
				lr.Post("/", leaveHandler.CreateLeave)  // POST /leaves
				lr.Get("/{id}", leaveHandler.GetLeave)  // GET /leaves/:id
				lr.Patch("/{id}", leaveHandler.PatchLeave)

				lr.Patch("/{id}/approve", leaveHandler.ApproveLeave)
				lr.Patch("/{id}/reject", leaveHandler.RejectLeave)
				lr.Patch("/{id}/postpone", leaveHandler.PostponeLeave)
			})

			pr.Route("/calendar", func(cr chi.Router) {
				cr.Get("/pending", calendarHandler.GetPending)
				cr.Post("/slot", calendarHandler.OpenSlot)
				cr.Post("/events/{id}", calendarHandler.OpenEvent)
				cr.Patch("/pending", calendarHandler.ApplyChange)
				cr.Post("/pending/save", calendarHandler.SavePending)
				cr.Delete("/pending", calendarHandler.CancelPending)
			})

			pr.Get("/notifications", notificationHandler.GetNotifications)
		})
	})
}
