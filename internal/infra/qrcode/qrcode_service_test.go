package qrcode

import (
	"bytes"
	"testing"

	"placebook/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func TestGeneratePlaceQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	place := &entity.Place{
		ID:       uuid.New(),
		Name:     "Blue Bottle",
		Location: "Oakland",
		Type:     "cafe",
		Rating:   4,
	}

	png, err := svc.GeneratePlaceQR(place)
	require.NoError(t, err)
	require.NotEmpty(t, png)
	assert.True(t, bytes.HasPrefix(png, pngMagic), "output should be a PNG image")
}

func TestNewQRCodeService_RecoveryLevels(t *testing.T) {
	for _, level := range []string{"L", "M", "Q", "H", "unknown"} {
		svc := NewQRCodeService(128, level)

		png, err := svc.GeneratePlaceQR(&entity.Place{ID: uuid.New(), Name: "x"})
		require.NoError(t, err, "level %s", level)
		assert.True(t, bytes.HasPrefix(png, pngMagic))
	}
}
