package handler

import (
	"log/slog"
	"net/http"

	"placebook/internal/delivery/http/response"
	"placebook/internal/domain/entity"
	domainerrors "placebook/internal/domain/errors"
	"placebook/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// GeocodeHandlerParams holds dependencies for GeocodeHandler, injected by Fx.
type GeocodeHandlerParams struct {
	fx.In

	GeocodingUC usecase.GeocodingUsecase
	Logger      *slog.Logger
}

// GeocodeHandler holds dependencies for address resolution handlers.
type GeocodeHandler struct {
	geocodingUC usecase.GeocodingUsecase
	logger      *slog.Logger
}

// NewGeocodeHandler is the constructor for GeocodeHandler.
func NewGeocodeHandler(params GeocodeHandlerParams) *GeocodeHandler {
	return &GeocodeHandler{
		geocodingUC: params.GeocodingUC,
		logger:      params.Logger,
	}
}

// ForwardGeocodeRequest represents the request body for address resolution.
type ForwardGeocodeRequest struct {
	Address string `json:"address" validate:"required"`
}

// ForwardGeocodeResponse represents a resolved placemark.
type ForwardGeocodeResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
	Category  string  `json:"category,omitempty"`
}

// ReverseGeocodeRequest represents the request body for reverse resolution.
type ReverseGeocodeRequest struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// ReverseGeocodeResponse represents a short street address.
type ReverseGeocodeResponse struct {
	Address string `json:"address"`
}

// ForwardGeocode resolves a free-text address to its best coordinate match.
func (h *GeocodeHandler) ForwardGeocode(c echo.Context) error {
	var req ForwardGeocodeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid geocode input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	placemark, err := h.geocodingUC.ResolveAddress(c.Request().Context(), req.Address)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, ForwardGeocodeResponse{
		Latitude:  placemark.Coordinate.Lat,
		Longitude: placemark.Coordinate.Lng,
		Name:      placemark.Name,
		Category:  placemark.Category,
	}, "Address resolved successfully")
}

// ReverseGeocode resolves a coordinate to a short street address.
func (h *GeocodeHandler) ReverseGeocode(c echo.Context) error {
	var req ReverseGeocodeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid geocode input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	address, err := h.geocodingUC.ReverseGeocode(c.Request().Context(), entity.Coordinate{
		Lat: req.Latitude,
		Lng: req.Longitude,
	})
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, ReverseGeocodeResponse{Address: address}, "Coordinate resolved successfully")
}

// handleAppError handles application errors
func (h *GeocodeHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
