package router

import (
	"net/http"

	"mergington-activities/internal/handler"
	"mergington-activities/internal/middleware"

	"github.com/labstack/echo/v4"
)

func SetupRoutes(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	activityHandler *handler.ActivityHandler,
	eventHandler *handler.EventHandler,
	staticPath string,
) {
	// Staff sign-in routes
	e.GET("/auth/:provider", authHandler.BeginAuthHandler)
	e.GET("/auth/:provider/callback", authHandler.CallbackHandler)
	e.GET("/auth/logout", authHandler.LogoutHandler)

	// The frontend is a static page; the root just points at it
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusTemporaryRedirect, "/static/index.html")
	})

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	// Public activity routes
	e.GET("/activities", activityHandler.GetActivities)
	e.POST("/activities/:name/signup", activityHandler.SignUp)
	e.DELETE("/activities/:name/unregister", activityHandler.Unregister)

	// Interaction events reported by the frontend
	e.POST("/api/events", eventHandler.ReportEvent)

	// Staff API routes
	staff := e.Group("/api")
	staff.Use(middleware.AuthMiddleware(authHandler))

	staff.POST("/activities", activityHandler.CreateActivity)
	staff.DELETE("/activities/:name", activityHandler.DeleteActivity)
	staff.GET("/activities/:name/roster", activityHandler.GetRoster)

	// Live roster updates via Server-Sent Events
	staff.GET("/sse", activityHandler.RosterUpdates)

	// Serve the frontend assets
	e.Static("/static", staticPath)
}
