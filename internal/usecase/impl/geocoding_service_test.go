package impl

import (
	"context"
	"sync"
	"testing"

	"placebook/internal/domain/entity"
	domainerrors "placebook/internal/domain/errors"
	"placebook/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocodingService_ResolveAddress(t *testing.T) {
	provider := &fakeGeocoder{
		placemark: &service.Placemark{
			Coordinate: entity.Coordinate{Lat: 48.8584, Lng: 2.2945},
			Name:       "Tour Eiffel",
		},
	}
	geocoder := NewGeocodingService(provider, testLogger())

	placemark, err := geocoder.ResolveAddress(context.Background(), "eiffel tower")
	require.NoError(t, err)
	require.NotNil(t, placemark)
	assert.InDelta(t, 48.8584, placemark.Coordinate.Lat, 1e-9)
	assert.Equal(t, "Tour Eiffel", placemark.Name)
}

func TestGeocodingService_ResolveAddress_NoMatch(t *testing.T) {
	provider := &fakeGeocoder{err: service.ErrNoMatch}
	geocoder := NewGeocodingService(provider, testLogger())

	_, err := geocoder.ResolveAddress(context.Background(), "nowhere at all")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAddressNotFound)
}

func TestGeocodingService_ResolveAddress_ProviderFailure(t *testing.T) {
	provider := &fakeGeocoder{err: assert.AnError}
	geocoder := NewGeocodingService(provider, testLogger())

	_, err := geocoder.ResolveAddress(context.Background(), "anywhere")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrGeocodingFailed)
}

func TestGeocodingService_ReverseGeocode(t *testing.T) {
	provider := &fakeGeocoder{address: "Baker Street, 221"}
	geocoder := NewGeocodingService(provider, testLogger())

	address, err := geocoder.ReverseGeocode(context.Background(), entity.Coordinate{Lat: 51.5237, Lng: -0.1585})
	require.NoError(t, err)
	assert.Equal(t, "Baker Street, 221", address)
}

func TestGeocodingService_ReverseGeocode_InvalidCoordinate(t *testing.T) {
	geocoder := NewGeocodingService(&fakeGeocoder{}, testLogger())

	_, err := geocoder.ReverseGeocode(context.Background(), entity.Coordinate{Lat: 95, Lng: 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestGeocodingService_LastRequestWins(t *testing.T) {
	entered := make(chan struct{}, 2)
	block := make(chan struct{})
	provider := &fakeGeocoder{
		placemark: &service.Placemark{Name: "winner"},
		entered:   entered,
		block:     block,
	}
	geocoder := NewGeocodingService(provider, testLogger())

	firstErr := make(chan error, 1)

	go func() {
		_, err := geocoder.ResolveAddress(context.Background(), "first")
		firstErr <- err
	}()
	<-entered // first request is parked in the provider

	// The second request cancels the first mid-flight: the first comes back
	// superseded while the second, once unblocked, succeeds.
	secondDone := make(chan struct{})
	var secondPlacemark *service.Placemark
	var secondErr error

	go func() {
		defer close(secondDone)
		secondPlacemark, secondErr = geocoder.ResolveAddress(context.Background(), "second")
	}()

	err := <-firstErr
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrRequestSuperseded)

	<-entered
	close(block)
	<-secondDone
	require.NoError(t, secondErr)
	assert.Equal(t, "winner", secondPlacemark.Name)
}

func TestGeocodingService_DirectionsAreIndependent(t *testing.T) {
	block := make(chan struct{})
	provider := &fakeGeocoder{
		placemark: &service.Placemark{Name: "forward"},
		address:   "reverse street",
		block:     block,
	}
	geocoder := NewGeocodingService(provider, testLogger())

	var wg sync.WaitGroup
	var forwardErr, reverseErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, forwardErr = geocoder.ResolveAddress(context.Background(), "a")
	}()
	go func() {
		defer wg.Done()
		_, reverseErr = geocoder.ReverseGeocode(context.Background(), entity.Coordinate{Lat: 1, Lng: 1})
	}()

	close(block)
	wg.Wait()

	// A forward request never supersedes a reverse one, and vice versa.
	assert.NoError(t, forwardErr)
	assert.NoError(t, reverseErr)
}
