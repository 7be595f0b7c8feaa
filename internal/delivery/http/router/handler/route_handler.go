package handler

import (
	"log/slog"
	"net/http"

	"placebook/internal/delivery/http/response"
	"placebook/internal/domain/entity"
	domainerrors "placebook/internal/domain/errors"
	"placebook/internal/usecase"
	"placebook/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// RouteHandlerParams holds dependencies for RouteHandler, injected by Fx.
type RouteHandlerParams struct {
	fx.In

	RoutingUC  usecase.RoutingUsecase
	LocationUC usecase.LocationUsecase
	Logger     *slog.Logger
}

// RouteHandler holds dependencies for route computation handlers.
type RouteHandler struct {
	routingUC  usecase.RoutingUsecase
	locationUC usecase.LocationUsecase
	logger     *slog.Logger
}

// NewRouteHandler is the constructor for RouteHandler.
func NewRouteHandler(params RouteHandlerParams) *RouteHandler {
	return &RouteHandler{
		routingUC:  params.RoutingUC,
		locationUC: params.LocationUC,
		logger:     params.Logger,
	}
}

// ComputeRouteRequest represents the request body for a route computation.
// The origin falls back to the tracker's current location when omitted; the
// destination is an address to resolve or an explicit coordinate.
type ComputeRouteRequest struct {
	OriginLatitude       *float64 `json:"origin_latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	OriginLongitude      *float64 `json:"origin_longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	DestinationAddress   string   `json:"destination_address,omitempty"`
	DestinationLatitude  *float64 `json:"destination_latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	DestinationLongitude *float64 `json:"destination_longitude,omitempty" validate:"omitempty,min=-180,max=180"`
}

// RouteResponse represents one computed route.
type RouteResponse struct {
	Polyline []CoordinateResponse `json:"polyline"`
	Distance string               `json:"distance"`
	Duration string               `json:"duration"`

	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// CoordinateResponse represents a polyline point.
type CoordinateResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ComputeRouteResponse represents the route computation result.
type ComputeRouteResponse struct {
	State  string          `json:"state"`
	Routes []RouteResponse `json:"routes"`
}

func toRouteResponse(route entity.Route) RouteResponse {
	polyline := make([]CoordinateResponse, 0, len(route.Polyline))
	for _, point := range route.Polyline {
		polyline = append(polyline, CoordinateResponse{Latitude: point.Lat, Longitude: point.Lng})
	}

	return RouteResponse{
		Polyline:        polyline,
		Distance:        util.FormatDistance(route.DistanceMeters),
		Duration:        util.FormatDuration(route.DurationSeconds),
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,
	}
}

// ComputeRoute resolves the destination when given as an address and
// requests a driving route from the origin.
func (h *RouteHandler) ComputeRoute(c echo.Context) error {
	var req ComputeRouteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid route input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	ctx := c.Request().Context()

	switch {
	case req.DestinationLatitude != nil && req.DestinationLongitude != nil:
		h.routingUC.SetDestination(entity.Coordinate{
			Lat: *req.DestinationLatitude,
			Lng: *req.DestinationLongitude,
		})
	case req.DestinationAddress != "":
		if _, err := h.routingUC.ResolveDestination(ctx, req.DestinationAddress); err != nil {
			return h.handleAppError(c, err)
		}
	}

	var origin entity.Coordinate
	if req.OriginLatitude != nil && req.OriginLongitude != nil {
		origin = entity.Coordinate{Lat: *req.OriginLatitude, Lng: *req.OriginLongitude}
	} else {
		current, err := h.locationUC.CurrentLocation()
		if err != nil {
			return h.handleAppError(c, err)
		}
		origin = current
	}

	routes, err := h.routingUC.ComputeRoute(ctx, origin)
	if err != nil {
		return h.handleAppError(c, err)
	}

	out := ComputeRouteResponse{
		State:  string(h.routingUC.State()),
		Routes: make([]RouteResponse, 0, len(routes)),
	}
	for _, route := range routes {
		out.Routes = append(out.Routes, toRouteResponse(route))
	}

	return response.Success(c, http.StatusOK, out, "Route computed successfully")
}

// GetActiveRoutes returns the overlay of the latest successful request.
func (h *RouteHandler) GetActiveRoutes(c echo.Context) error {
	routes := h.routingUC.ActiveRoutes()

	out := ComputeRouteResponse{
		State:  string(h.routingUC.State()),
		Routes: make([]RouteResponse, 0, len(routes)),
	}
	for _, route := range routes {
		out.Routes = append(out.Routes, toRouteResponse(route))
	}

	return response.Success(c, http.StatusOK, out, "Active routes retrieved successfully")
}

// handleAppError handles application errors
func (h *RouteHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
