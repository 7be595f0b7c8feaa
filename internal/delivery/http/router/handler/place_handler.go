// Package handler contains the echo handlers of the HTTP delivery.
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"placebook/config"
	"placebook/internal/delivery/http/response"
	"placebook/internal/domain/entity"
	domainerrors "placebook/internal/domain/errors"
	"placebook/internal/domain/service"
	"placebook/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// PlaceHandlerParams holds dependencies for PlaceHandler, injected by Fx.
type PlaceHandlerParams struct {
	fx.In

	Config    *config.Config
	CatalogUC usecase.CatalogUsecase
	QRCode    service.QRCodeService
	Logger    *slog.Logger
}

// PlaceHandler holds dependencies for the place catalog handlers.
type PlaceHandler struct {
	cfg       *config.Config
	catalogUC usecase.CatalogUsecase
	qrcode    service.QRCodeService
	logger    *slog.Logger
}

// NewPlaceHandler is the constructor for PlaceHandler.
func NewPlaceHandler(params PlaceHandlerParams) *PlaceHandler {
	return &PlaceHandler{
		cfg:       params.Config,
		catalogUC: params.CatalogUC,
		qrcode:    params.QRCode,
		logger:    params.Logger,
	}
}

// PlaceRequest represents the request body for creating or updating a place.
// An update overwrites every field; omitted fields reset to their zero value.
type PlaceRequest struct {
	Name      string `json:"name" validate:"required"`
	Location  string `json:"location"`
	Type      string `json:"type"`
	ImageData []byte `json:"image_data,omitempty"`
	Rating    int    `json:"rating"`
}

// PlaceResponse represents a place in API responses.
type PlaceResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	Type      string `json:"type"`
	ImageData []byte `json:"image_data,omitempty"`
	Rating    int    `json:"rating"`
}

func toPlaceResponse(place *entity.Place) PlaceResponse {
	return PlaceResponse{
		ID:        place.ID.String(),
		Name:      place.Name,
		Location:  place.Location,
		Type:      place.Type,
		ImageData: place.ImageData,
		Rating:    place.Rating,
	}
}

// CreatePlace handles adding a new place to the catalog.
func (h *PlaceHandler) CreatePlace(c echo.Context) error {
	req, err := h.bindPlaceRequest(c)
	if err != nil {
		return err
	}

	place, err := h.catalogUC.CreatePlace(c.Request().Context(), &usecase.PlaceDraftInput{
		Name:      req.Name,
		Location:  req.Location,
		Type:      req.Type,
		ImageData: req.ImageData,
		Rating:    req.Rating,
	})
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toPlaceResponse(place), "Place created successfully")
}

// GetPlace handles retrieving a single place by ID.
func (h *PlaceHandler) GetPlace(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid place ID")
	}

	place, err := h.catalogUC.GetPlace(c.Request().Context(), id)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toPlaceResponse(place), "Place retrieved successfully")
}

// ListPlaces handles the sorted, filtered catalog listing.
func (h *PlaceHandler) ListPlaces(c echo.Context) error {
	input := usecase.ListInput{
		SortBy:    entity.SortField(c.QueryParam("sort")),
		Ascending: !strings.EqualFold(c.QueryParam("order"), "desc"),
		Filter:    c.QueryParam("filter"),
	}
	if input.SortBy == "" {
		input.SortBy = entity.SortByName
	}

	places, err := h.catalogUC.ListPlaces(c.Request().Context(), input)
	if err != nil {
		return h.handleAppError(c, err)
	}

	out := make([]PlaceResponse, 0, len(places))
	for _, place := range places {
		out = append(out, toPlaceResponse(place))
	}

	return response.Success(c, http.StatusOK, out, "Places retrieved successfully")
}

// UpdatePlace handles overwriting an existing place.
func (h *PlaceHandler) UpdatePlace(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid place ID")
	}

	req, err := h.bindPlaceRequest(c)
	if err != nil {
		return err
	}

	place, err := h.catalogUC.UpdatePlace(c.Request().Context(), id, &usecase.PlaceDraftInput{
		Name:      req.Name,
		Location:  req.Location,
		Type:      req.Type,
		ImageData: req.ImageData,
		Rating:    req.Rating,
	})
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toPlaceResponse(place), "Place updated successfully")
}

// DeletePlace handles removing a place from the catalog.
func (h *PlaceHandler) DeletePlace(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid place ID")
	}

	if err := h.catalogUC.DeletePlace(c.Request().Context(), id); err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Place deleted successfully"}, "Place deleted successfully")
}

// GetPlaceQRCode renders a share code for one place as a PNG image.
func (h *PlaceHandler) GetPlaceQRCode(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid place ID")
	}

	place, err := h.catalogUC.GetPlace(c.Request().Context(), id)
	if err != nil {
		return h.handleAppError(c, err)
	}

	png, err := h.qrcode.GeneratePlaceQR(place)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

func (h *PlaceHandler) bindPlaceRequest(c echo.Context) (*PlaceRequest, error) {
	var req PlaceRequest
	if err := c.Bind(&req); err != nil {
		return nil, response.BindingError(c, "INVALID_INPUT", "Invalid place input")
	}

	if err := c.Validate(&req); err != nil {
		return nil, response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if limit := h.cfg.Catalog; limit != nil && limit.MaxImageBytes > 0 && len(req.ImageData) > limit.MaxImageBytes {
		return nil, response.BadRequest(c, "IMAGE_TOO_LARGE", "Place photo exceeds the accepted size")
	}

	return &req, nil
}

// handleAppError handles application errors
func (h *PlaceHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
