// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"courtbook/internal/handler"
	"courtbook/internal/middleware"
	"courtbook/internal/model"
)

// Handlers collects every handler group the router wires up.
type Handlers struct {
	Auth               *handler.AuthHandler
	PublicCourts       *handler.PublicCourtHandler
	OwnerCourts        *handler.OwnerCourtHandler
	PlayerReservations *handler.PlayerReservationHandler
	OwnerReservations  *handler.OwnerReservationHandler
	Notifications      *handler.NotificationHandler
	Reports            *handler.ReportHandler
}

// Register wires every route onto the Echo instance.  Everything except
// the health check lives under /api; apiMW (rate limiting) runs on the
// whole /api group, authentication only on the protected subset.
func Register(e *echo.Echo, h Handlers, jwtSecret string, apiMW ...echo.MiddlewareFunc) {
	// Health check outside /api so probes bypass the rate limiter.
	e.GET("/healthz", handler.Health)

	api := e.Group("/api", apiMW...)

	// Unauthenticated: registration, login and the public court browse.
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	// Logout only clears the cookie, so it works without a session too.
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/courts", h.PublicCourts.ListActive)
	api.GET("/courts/:id", h.PublicCourts.GetActive)

	// Everything below requires a session (cookie or Bearer token).
	auth := api.Group("", middleware.Auth(jwtSecret))

	auth.GET("/auth/me", h.Auth.Me)
	auth.DELETE("/auth/account", h.Auth.DeleteAccount)

	// Notifications are personal and role-agnostic.
	auth.GET("/notifications", h.Notifications.List)
	auth.GET("/notifications/unread-count", h.Notifications.UnreadCount)
	auth.PATCH("/notifications/mark-all-read", h.Notifications.MarkAllRead)
	auth.PATCH("/notifications/:id/read", h.Notifications.MarkRead)
	auth.DELETE("/notifications/:id", h.Notifications.Delete)

	// Player endpoints: booking, payment and self-cancellation.
	playerOnly := middleware.RequireRole(model.RolePlayer)
	auth.POST("/reservations", h.PlayerReservations.Book, playerOnly)
	player := auth.Group("/player/reservations", playerOnly)
	player.GET("", h.PlayerReservations.List)
	player.POST("/:id/pay", h.PlayerReservations.Pay)
	player.DELETE("/:id", h.PlayerReservations.Cancel)

	// Owner endpoints: court management, reservation oversight, reports.
	owner := auth.Group("/owner", middleware.RequireRole(model.RoleOwner))
	owner.POST("/courts", h.OwnerCourts.Create)
	owner.GET("/courts", h.OwnerCourts.List)
	owner.GET("/courts/:id", h.OwnerCourts.Get)
	owner.PUT("/courts/:id", h.OwnerCourts.Update)
	owner.DELETE("/courts/:id", h.OwnerCourts.Delete)

	owner.GET("/reservations", h.OwnerReservations.List)
	owner.DELETE("/reservations/:id", h.OwnerReservations.Cancel)

	owner.GET("/reports/summary", h.Reports.Summary)
	owner.GET("/reports/by-court", h.Reports.ByCourt)
	owner.GET("/reports/revenue-by-month", h.Reports.RevenueByMonth)
	owner.GET("/reports/history", h.Reports.History)
	owner.GET("/reports/top-customers", h.Reports.TopCustomers)
}
