// Package router wires HTTP routes to their handlers. The auth endpoints are
// open; everything under /api/records sits behind the JWT guard.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/edgarsv/passvault/internal/handler"
	"github.com/edgarsv/passvault/internal/middleware"
)

// RegisterRoutes registers all application routes on the provided Echo
// instance. jwtSecret must match the secret the auth handler signs with.
func RegisterRoutes(e *echo.Echo, a *handler.AuthHandler, r *handler.RecordHandler, jwtSecret string) {
	e.GET("/healthz", handler.Health)

	auth := e.Group("/api/auth")
	auth.POST("/signup", a.Signup)
	auth.POST("/login", a.Login)

	records := e.Group("/api/records", middleware.JWTAuth(jwtSecret))
	records.GET("", r.List)
	records.POST("", r.Create)
	records.DELETE("/:id", r.Delete)
}
