package util

import (
	"testing"
)

func TestFormatDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		meters   float64
		expected string
	}{
		{name: "zero meters", meters: 0, expected: "0 m"},
		{name: "under a kilometer", meters: 850, expected: "850 m"},
		{name: "exact kilometer", meters: 1000, expected: "1.0 km"},
		{name: "fractional kilometers", meters: 5200, expected: "5.2 km"},
		{name: "long distance", meters: 123456, expected: "123.5 km"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatDistance(tt.meters); got != tt.expected {
				t.Fatalf("FormatDistance(%v) = %s, want %s", tt.meters, got, tt.expected)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		seconds  float64
		expected string
	}{
		{name: "under one minute", seconds: 45, expected: "45s"},
		{name: "rounded up to minute", seconds: 59.5, expected: "1m0s"},
		{name: "minutes and seconds", seconds: 150, expected: "2m30s"},
		{name: "hours and minutes", seconds: 5400, expected: "1h30m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatDuration(tt.seconds); got != tt.expected {
				t.Fatalf("FormatDuration(%v) = %s, want %s", tt.seconds, got, tt.expected)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "zero bytes", bytes: 0, expected: "0 B"},
		{name: "bytes under kilobyte", bytes: 512, expected: "512 B"},
		{name: "exact kilobyte", bytes: 1024, expected: "1.0 KB"},
		{name: "megabyte", bytes: 1024 * 1024, expected: "1.0 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatBytes(tt.bytes); got != tt.expected {
				t.Fatalf("FormatBytes(%d) = %s, want %s", tt.bytes, got, tt.expected)
			}
		})
	}
}
