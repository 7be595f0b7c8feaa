package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"placebook/internal/domain/entity"
	"placebook/internal/domain/service"
	"placebook/internal/infra/persistence/memory"
	"placebook/internal/usecase"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCatalog(t *testing.T) usecase.CatalogUsecase {
	t.Helper()

	store := memory.NewStore()

	return NewCatalogService(store, store, testLogger())
}

func mustCreate(t *testing.T, catalog usecase.CatalogUsecase, name, location, placeType string, rating int) *entity.Place {
	t.Helper()

	place, err := catalog.CreatePlace(context.Background(), &usecase.PlaceDraftInput{
		Name:     name,
		Location: location,
		Type:     placeType,
		Rating:   rating,
	})
	require.NoError(t, err)
	require.NotNil(t, place)

	return place
}

// fakeGeocoder is a controllable geocoding provider. When block is set, a
// call signals entered and then parks until the channel closes or the
// context is cancelled.
type fakeGeocoder struct {
	placemark *service.Placemark
	address   string
	err       error
	entered   chan struct{}
	block     chan struct{}
}

func (f *fakeGeocoder) wait(ctx context.Context) error {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return f.err
}

func (f *fakeGeocoder) Forward(ctx context.Context, _ string) (*service.Placemark, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}

	return f.placemark, nil
}

func (f *fakeGeocoder) Reverse(ctx context.Context, _ entity.Coordinate) (string, error) {
	if err := f.wait(ctx); err != nil {
		return "", err
	}

	return f.address, nil
}

// fakeRouter is a controllable route provider with the same blocking knobs.
type fakeRouter struct {
	routes  []entity.Route
	err     error
	entered chan struct{}
	block   chan struct{}
}

func (f *fakeRouter) Route(ctx context.Context, _, _ entity.Coordinate) ([]entity.Route, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}

	return f.routes, nil
}
