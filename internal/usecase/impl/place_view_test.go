package impl

import (
	"context"
	"testing"

	"placebook/internal/domain/entity"
	domainerrors "placebook/internal/domain/errors"
	"placebook/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceView_InitialSnapshot(t *testing.T) {
	catalog := newTestCatalog(t)
	mustCreate(t, catalog, "Beta", "", "", 0)
	mustCreate(t, catalog, "Alpha", "", "", 0)

	view, err := catalog.OpenView(context.Background(), usecase.ListInput{})
	require.NoError(t, err)
	defer view.Close()

	places := view.Places()
	require.Len(t, places, 2)
	// Default ordering is by name ascending.
	assert.Equal(t, "Alpha", places[0].Name)
	assert.Equal(t, "Beta", places[1].Name)
}

func TestPlaceView_UnknownSortField(t *testing.T) {
	catalog := newTestCatalog(t)

	_, err := catalog.OpenView(context.Background(), usecase.ListInput{SortBy: "bogus"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestPlaceView_TracksMutations(t *testing.T) {
	catalog := newTestCatalog(t)
	view, err := catalog.OpenView(context.Background(), usecase.ListInput{})
	require.NoError(t, err)
	defer view.Close()

	notified := 0
	view.Listen(func() { notified++ })

	place := mustCreate(t, catalog, "Fresh", "", "", 0)
	require.Len(t, view.Places(), 1)
	assert.Equal(t, 1, notified)

	_, err = catalog.UpdatePlace(context.Background(), place.ID, &usecase.PlaceDraftInput{Name: "Renamed"})
	require.NoError(t, err)
	require.Len(t, view.Places(), 1)
	assert.Equal(t, "Renamed", view.Places()[0].Name)
	assert.Equal(t, 2, notified)

	require.NoError(t, catalog.DeletePlace(context.Background(), place.ID))
	assert.Empty(t, view.Places())
	assert.Equal(t, 3, notified)
}

func TestPlaceView_SetSort(t *testing.T) {
	catalog := newTestCatalog(t)
	mustCreate(t, catalog, "One", "", "", 1)
	mustCreate(t, catalog, "Five", "", "", 5)
	mustCreate(t, catalog, "Three", "", "", 3)

	view, err := catalog.OpenView(context.Background(), usecase.ListInput{})
	require.NoError(t, err)
	defer view.Close()

	require.NoError(t, view.SetSort(context.Background(), entity.SortByRating, false))

	places := view.Places()
	require.Len(t, places, 3)
	assert.Equal(t, 5, places[0].Rating)
	assert.Equal(t, 3, places[1].Rating)
	assert.Equal(t, 1, places[2].Rating)

	err = view.SetSort(context.Background(), "bogus", true)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestPlaceView_SetFilter(t *testing.T) {
	catalog := newTestCatalog(t)
	mustCreate(t, catalog, "Harbor View", "Lisbon", "", 0)
	mustCreate(t, catalog, "Mountain Hut", "Alps", "", 0)

	view, err := catalog.OpenView(context.Background(), usecase.ListInput{})
	require.NoError(t, err)
	defer view.Close()

	require.NoError(t, view.SetFilter(context.Background(), "harbor"))
	require.Len(t, view.Places(), 1)
	assert.Equal(t, "Harbor View", view.Places()[0].Name)

	// Filtered views still track mutations.
	mustCreate(t, catalog, "Harbor Cafe", "Porto", "", 0)
	assert.Len(t, view.Places(), 2)

	// Empty text deactivates the filter.
	require.NoError(t, view.SetFilter(context.Background(), ""))
	assert.Len(t, view.Places(), 3)
}

func TestPlaceView_Close(t *testing.T) {
	catalog := newTestCatalog(t)
	mustCreate(t, catalog, "Kept", "", "", 0)

	view, err := catalog.OpenView(context.Background(), usecase.ListInput{})
	require.NoError(t, err)

	view.Close()
	view.Close() // idempotent

	mustCreate(t, catalog, "After Close", "", "", 0)

	// The last snapshot stays readable but no longer updates.
	places := view.Places()
	require.Len(t, places, 1)
	assert.Equal(t, "Kept", places[0].Name)
}

func TestPlaceView_ListenUnsubscribe(t *testing.T) {
	catalog := newTestCatalog(t)
	view, err := catalog.OpenView(context.Background(), usecase.ListInput{})
	require.NoError(t, err)
	defer view.Close()

	notified := 0
	unsubscribe := view.Listen(func() { notified++ })

	mustCreate(t, catalog, "A", "", "", 0)
	assert.Equal(t, 1, notified)

	unsubscribe()
	mustCreate(t, catalog, "B", "", "", 0)
	assert.Equal(t, 1, notified)
}
