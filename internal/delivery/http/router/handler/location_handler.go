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

// LocationHandlerParams holds dependencies for LocationHandler, injected by Fx.
type LocationHandlerParams struct {
	fx.In

	LocationUC usecase.LocationUsecase
	Logger     *slog.Logger
}

// LocationHandler holds dependencies for device location handlers.
type LocationHandler struct {
	locationUC usecase.LocationUsecase
	logger     *slog.Logger
}

// NewLocationHandler is the constructor for LocationHandler.
func NewLocationHandler(params LocationHandlerParams) *LocationHandler {
	return &LocationHandler{
		locationUC: params.LocationUC,
		logger:     params.Logger,
	}
}

// ReportPositionRequest represents a device position fix relayed by the client.
type ReportPositionRequest struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// ReportAuthorizationRequest represents a permission change relayed by the client.
type ReportAuthorizationRequest struct {
	State string `json:"state" validate:"required"`
}

// AuthorizationResponse represents the permission state.
type AuthorizationResponse struct {
	State string `json:"state"`
}

// PositionResponse represents the latest known device position.
type PositionResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ReportPosition records a device position fix.
func (h *LocationHandler) ReportPosition(c echo.Context) error {
	var req ReportPositionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid position input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	err := h.locationUC.ReportPosition(entity.Coordinate{Lat: req.Latitude, Lng: req.Longitude})
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusAccepted, nil, "Position recorded")
}

// ReportAuthorization records a permission change.
func (h *LocationHandler) ReportAuthorization(c echo.Context) error {
	var req ReportAuthorizationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid authorization input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	err := h.locationUC.ReportAuthorization(usecase.AuthorizationState(req.State))
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, AuthorizationResponse{State: req.State}, "Authorization recorded")
}

// GetAuthorization inspects the permission state machine.
func (h *LocationHandler) GetAuthorization(c echo.Context) error {
	state, err := h.locationUC.CheckAuthorization()
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, AuthorizationResponse{State: string(state)}, "Authorization retrieved")
}

// GetCurrentLocation returns the latest authorized position fix.
func (h *LocationHandler) GetCurrentLocation(c echo.Context) error {
	coord, err := h.locationUC.CurrentLocation()
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, PositionResponse{
		Latitude:  coord.Lat,
		Longitude: coord.Lng,
	}, "Current location retrieved")
}

// handleAppError handles application errors
func (h *LocationHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
