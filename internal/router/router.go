// Package router defines how HTTP routes are registered for the API.
// All resource routes live under the /app base path; anything else
// under /app answers with a JSON 404.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jeycc/festival-booking/internal/handler"
)

// Handlers bundles the per-resource handlers the router mounts under
// /app.
type Handlers struct {
	Tickets    *handler.TicketHandler
	Clients    *handler.ClientHandler
	Movies     *handler.MovieHandler
	Snacks     *handler.SnackHandler
	Transports *handler.TransportHandler
}

// RegisterRoutes mounts the health check and all /app resource routes
// on the provided Echo instance. catalogCache, when non-nil, is
// applied to the read-mostly catalog groups (movies, snacks,
// transports); ticket and client routes stay uncached so mutations
// are always observed immediately.
func RegisterRoutes(e *echo.Echo, h Handlers, catalogCache echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	app := e.Group("/app")

	var catalog []echo.MiddlewareFunc
	if catalogCache != nil {
		catalog = append(catalog, catalogCache)
	}

	tickets := app.Group("/tickets")
	tickets.POST("", h.Tickets.Create)
	tickets.GET("", h.Tickets.List)
	tickets.GET("/:ticketId", h.Tickets.Get)
	tickets.GET("/:ticketId/client", h.Tickets.GetClient)
	tickets.PUT("/:ticketId", h.Tickets.Update)
	tickets.DELETE("/:ticketId", h.Tickets.Delete)

	clients := app.Group("/clients")
	clients.POST("/register", h.Clients.Register)
	clients.GET("", h.Clients.List)
	clients.GET("/:clientId", h.Clients.Get)
	clients.PUT("", h.Clients.Update)
	clients.DELETE("", h.Clients.Delete)

	movies := app.Group("/movies", catalog...)
	movies.POST("", h.Movies.Create)
	movies.GET("", h.Movies.List)
	movies.GET("/:movieId", h.Movies.Get)
	movies.PUT("", h.Movies.Update)
	movies.DELETE("/:movieId", h.Movies.Delete)

	snacks := app.Group("/snacks", catalog...)
	snacks.POST("", h.Snacks.Create)
	snacks.GET("", h.Snacks.List)
	snacks.GET("/:name", h.Snacks.Get)
	snacks.PUT("", h.Snacks.Update)
	snacks.DELETE("/:name", h.Snacks.Delete)

	transports := app.Group("/transports", catalog...)
	transports.POST("", h.Transports.Create)
	transports.GET("", h.Transports.List)
	transports.GET("/:transportId", h.Transports.Get)
	transports.PUT("", h.Transports.Update)
	transports.DELETE("/:transportId", h.Transports.Delete)

	// Unknown paths under the base path answer with the same JSON
	// error shape as the resource routes.
	e.RouteNotFound("/app/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Route not found."})
	})
}
