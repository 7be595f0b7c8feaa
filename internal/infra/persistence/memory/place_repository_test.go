package memory

import (
	"context"
	"testing"

	"placebook/internal/domain/entity"
	"placebook/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCreate(t *testing.T, store *Store, name, location, placeType string, rating int) *entity.Place {
	t.Helper()

	place := &entity.Place{
		Name:     name,
		Location: location,
		Type:     placeType,
		Rating:   rating,
	}
	require.NoError(t, store.CreatePlace(context.Background(), place))

	return place
}

func TestStore_CreateAndFind(t *testing.T) {
	store := NewStore()

	place := mustCreate(t, store, "Blue Bottle", "Oakland", "cafe", 4)
	assert.NotEqual(t, uuid.Nil, place.ID)
	assert.False(t, place.CreatedAt.IsZero())

	found, err := store.FindPlaceByID(context.Background(), place.ID)
	require.NoError(t, err)
	assert.Equal(t, "Blue Bottle", found.Name)

	_, err = store.FindPlaceByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrPlaceNotFound)
}

func TestStore_FindReturnsCopy(t *testing.T) {
	store := NewStore()
	place := mustCreate(t, store, "Original", "", "", 0)

	found, err := store.FindPlaceByID(context.Background(), place.ID)
	require.NoError(t, err)
	found.Name = "Mutated"

	again, err := store.FindPlaceByID(context.Background(), place.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", again.Name)
}

func TestStore_Update(t *testing.T) {
	store := NewStore()
	place := mustCreate(t, store, "Old", "Town", "bar", 1)

	place.Name = "New"
	place.Rating = 5
	require.NoError(t, store.UpdatePlace(context.Background(), place))

	found, err := store.FindPlaceByID(context.Background(), place.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", found.Name)
	assert.Equal(t, 5, found.Rating)

	err = store.UpdatePlace(context.Background(), &entity.Place{ID: uuid.New(), Name: "Ghost"})
	assert.ErrorIs(t, err, repository.ErrPlaceNotFound)
}

func TestStore_Delete(t *testing.T) {
	store := NewStore()
	place := mustCreate(t, store, "Doomed", "", "", 0)

	require.NoError(t, store.DeletePlace(context.Background(), place.ID))
	assert.ErrorIs(t, store.DeletePlace(context.Background(), place.ID), repository.ErrPlaceNotFound)

	count, err := store.CountPlaces(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStore_List_InsertionOrderDefault(t *testing.T) {
	store := NewStore()
	mustCreate(t, store, "Charlie", "", "", 0)
	mustCreate(t, store, "Alpha", "", "", 0)
	mustCreate(t, store, "Bravo", "", "", 0)

	places, err := store.ListPlaces(context.Background(), repository.ListOptions{})
	require.NoError(t, err)
	require.Len(t, places, 3)
	assert.Equal(t, "Charlie", places[0].Name)
	assert.Equal(t, "Alpha", places[1].Name)
	assert.Equal(t, "Bravo", places[2].Name)
}

func TestStore_List_SortByNameDescending(t *testing.T) {
	store := NewStore()
	mustCreate(t, store, "Alpha", "", "", 0)
	mustCreate(t, store, "Charlie", "", "", 0)
	mustCreate(t, store, "Bravo", "", "", 0)

	places, err := store.ListPlaces(context.Background(), repository.ListOptions{
		SortBy:    entity.SortByName,
		Ascending: false,
	})
	require.NoError(t, err)
	require.Len(t, places, 3)
	assert.Equal(t, "Charlie", places[0].Name)
	assert.Equal(t, "Bravo", places[1].Name)
	assert.Equal(t, "Alpha", places[2].Name)
}

func TestStore_List_EqualKeysKeepInsertionOrder(t *testing.T) {
	store := NewStore()
	first := mustCreate(t, store, "Same", "A", "", 3)
	second := mustCreate(t, store, "Same", "B", "", 3)

	places, err := store.ListPlaces(context.Background(), repository.ListOptions{
		SortBy:    entity.SortByRating,
		Ascending: true,
	})
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, first.ID, places[0].ID)
	assert.Equal(t, second.ID, places[1].ID)
}

func TestStore_List_FilterMatchesNameAndLocation(t *testing.T) {
	store := NewStore()
	mustCreate(t, store, "Cafe Roma", "Berlin", "", 0)
	mustCreate(t, store, "Diner", "Rome", "", 0)
	mustCreate(t, store, "Bistro", "Paris", "", 0)

	places, err := store.ListPlaces(context.Background(), repository.ListOptions{Filter: "ROM"})
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "Cafe Roma", places[0].Name)
	assert.Equal(t, "Diner", places[1].Name)
}

func TestStore_Execute_RollsBackOnError(t *testing.T) {
	store := NewStore()
	kept := mustCreate(t, store, "Kept", "", "", 0)

	err := store.Execute(context.Background(), func(factory repository.RepositoryFactory) error {
		repo := factory.NewPlaceRepository()
		if err := repo.CreatePlace(context.Background(), &entity.Place{Name: "Phantom"}); err != nil {
			return err
		}
		if err := repo.DeletePlace(context.Background(), kept.ID); err != nil {
			return err
		}

		return assert.AnError
	})
	require.Error(t, err)

	count, err := store.CountPlaces(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	_, err = store.FindPlaceByID(context.Background(), kept.ID)
	assert.NoError(t, err)
}

func TestStore_Execute_CommitsOnSuccess(t *testing.T) {
	store := NewStore()

	err := store.Execute(context.Background(), func(factory repository.RepositoryFactory) error {
		return factory.NewPlaceRepository().CreatePlace(context.Background(), &entity.Place{Name: "Committed"})
	})
	require.NoError(t, err)

	count, err := store.CountPlaces(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
