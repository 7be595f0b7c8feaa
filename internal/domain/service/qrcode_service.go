package service

import "placebook/internal/domain/entity"

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// GeneratePlaceQR renders a PNG QR code that shares a catalog place
	// (name plus free-text address) with another device.
	GeneratePlaceQR(place *entity.Place) ([]byte, error)
}
