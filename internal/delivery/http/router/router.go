// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"placebook/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	PlaceHandler    *handler.PlaceHandler
	GeocodeHandler  *handler.GeocodeHandler
	RouteHandler    *handler.RouteHandler
	LocationHandler *handler.LocationHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	placeHandler    *handler.PlaceHandler
	geocodeHandler  *handler.GeocodeHandler
	routeHandler    *handler.RouteHandler
	locationHandler *handler.LocationHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		placeHandler:    params.PlaceHandler,
		geocodeHandler:  params.GeocodeHandler,
		routeHandler:    params.RouteHandler,
		locationHandler: params.LocationHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Place catalog routes
	placeGroup := e.Group("/places")
	{
		placeGroup.POST("", r.placeHandler.CreatePlace)
		placeGroup.GET("", r.placeHandler.ListPlaces)
		placeGroup.GET("/:id", r.placeHandler.GetPlace)
		placeGroup.PUT("/:id", r.placeHandler.UpdatePlace)
		placeGroup.DELETE("/:id", r.placeHandler.DeletePlace)
		placeGroup.GET("/:id/qr", r.placeHandler.GetPlaceQRCode)
	}

	// Geocoding routes
	geocodeGroup := e.Group("/geocode")
	{
		geocodeGroup.POST("/forward", r.geocodeHandler.ForwardGeocode)
		geocodeGroup.POST("/reverse", r.geocodeHandler.ReverseGeocode)
	}

	// Routing routes
	routeGroup := e.Group("/routes")
	{
		routeGroup.POST("", r.routeHandler.ComputeRoute)
		routeGroup.GET("/active", r.routeHandler.GetActiveRoutes)
	}

	// Device location routes
	locationGroup := e.Group("/location")
	{
		locationGroup.POST("/position", r.locationHandler.ReportPosition)
		locationGroup.POST("/authorization", r.locationHandler.ReportAuthorization)
		locationGroup.GET("/permission", r.locationHandler.GetAuthorization)
		locationGroup.GET("/current", r.locationHandler.GetCurrentLocation)
	}
}
