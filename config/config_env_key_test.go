package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey(t *testing.T) {
	existing := map[string]any{
		"geocoding": map[string]any{
			"baseUrl":   "https://nominatim.openstreetmap.org",
			"userAgent": "placebook/1.0",
		},
		"location": map[string]any{
			"recenterThresholdMeters": 50,
		},
	}

	tests := []struct {
		name     string
		envKey   string
		expected string
	}{
		{"aligns camelCase segments", "GEOCODING_BASEURL", "geocoding.baseUrl"},
		{"aligns multi-word segments", "GEOCODING_USERAGENT", "geocoding.userAgent"},
		{"keeps unknown segments lowercase", "GEOCODING_APIKEY", "geocoding.apikey"},
		{"unknown root stays lowercase", "ROUTING_BASEURL", "routing.baseurl"},
		{"nested known key", "LOCATION_RECENTERTHRESHOLDMETERS", "location.recenterThresholdMeters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "baseurl", normalizeToken("baseUrl"))
	assert.Equal(t, "maximagebytes", normalizeToken("max_image-bytes"))
	assert.Equal(t, "", normalizeToken("__"))
}
