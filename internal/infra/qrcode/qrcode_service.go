package qrcode

import (
	"encoding/json"
	"fmt"

	"placebook/internal/domain/entity"
	"placebook/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// PlaceQRData is the payload encoded into a place share code.
type PlaceQRData struct {
	PlaceID  string `json:"place_id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Type     string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GeneratePlaceQR renders a PNG QR code that shares a catalog place.
func (s *qrcodeService) GeneratePlaceQR(place *entity.Place) ([]byte, error) {
	data := PlaceQRData{
		PlaceID:  place.ID.String(),
		Name:     place.Name,
		Location: place.Location,
		Type:     "place",
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}
