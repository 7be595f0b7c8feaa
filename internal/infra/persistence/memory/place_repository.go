// Package memory provides an embedded, process-local implementation of the
// persistence layer. It backs the catalog when PostgreSQL is not configured
// and serves as the storage fake in tests. A single RWMutex gives the same
// guarantee as the SQL backend: readers observe fully pre- or fully
// post-transaction state, never an intermediate one.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"placebook/internal/domain/entity"
	"placebook/internal/domain/repository"

	"github.com/google/uuid"
)

// Store owns the canonical in-memory place collection. It implements both
// repository.PlaceRepository and repository.TransactionManager.
type Store struct {
	mu      sync.RWMutex
	places  map[uuid.UUID]*record
	nextSeq int64
}

type record struct {
	place entity.Place
	seq   int64
}

// NewStore creates an empty embedded store.
func NewStore() *Store {
	return &Store{places: make(map[uuid.UUID]*record)}
}

// NewPlaceRepository exposes the store under the repository interface.
func NewPlaceRepository(store *Store) repository.PlaceRepository {
	return store
}

// NewTransactionManager exposes the store under the transaction interface.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return store
}

// CreatePlace persists a new place record.
func (s *Store) CreatePlace(_ context.Context, place *entity.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.createLocked(place)
}

// FindPlaceByID retrieves a place by its unique ID.
func (s *Store) FindPlaceByID(_ context.Context, id uuid.UUID) (*entity.Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.places[id]
	if !ok {
		return nil, repository.ErrPlaceNotFound
	}

	return clonePlace(&rec.place), nil
}

// ListPlaces retrieves places ordered and filtered per opts.
func (s *Store) ListPlaces(_ context.Context, opts repository.ListOptions) ([]*entity.Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listLocked(opts), nil
}

// UpdatePlace overwrites all mutable fields of an existing record.
func (s *Store) UpdatePlace(_ context.Context, place *entity.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updateLocked(place)
}

// DeletePlace removes a place by its ID.
func (s *Store) DeletePlace(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteLocked(id)
}

// CountPlaces returns the total number of catalog records.
func (s *Store) CountPlaces(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.places)), nil
}

// Execute runs fn while holding the write lock, against a snapshot-backed
// view. On error the snapshot is restored, so partial writes are never
// observable.
func (s *Store) Execute(_ context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshotLocked()
	snapshotSeq := s.nextSeq

	if err := fn(&txFactory{store: s}); err != nil {
		s.places = snapshot
		s.nextSeq = snapshotSeq

		return err
	}

	return nil
}

type txFactory struct {
	store *Store
}

func (f *txFactory) NewPlaceRepository() repository.PlaceRepository {
	return &txRepository{store: f.store}
}

// txRepository operates on the store without re-locking: Execute already
// holds the write lock for the duration of the transaction.
type txRepository struct {
	store *Store
}

func (r *txRepository) CreatePlace(_ context.Context, place *entity.Place) error {
	return r.store.createLocked(place)
}

func (r *txRepository) FindPlaceByID(_ context.Context, id uuid.UUID) (*entity.Place, error) {
	rec, ok := r.store.places[id]
	if !ok {
		return nil, repository.ErrPlaceNotFound
	}

	return clonePlace(&rec.place), nil
}

func (r *txRepository) ListPlaces(_ context.Context, opts repository.ListOptions) ([]*entity.Place, error) {
	return r.store.listLocked(opts), nil
}

func (r *txRepository) UpdatePlace(_ context.Context, place *entity.Place) error {
	return r.store.updateLocked(place)
}

func (r *txRepository) DeletePlace(_ context.Context, id uuid.UUID) error {
	return r.store.deleteLocked(id)
}

func (r *txRepository) CountPlaces(_ context.Context) (int64, error) {
	return int64(len(r.store.places)), nil
}

// --- locked core operations ---

func (s *Store) createLocked(place *entity.Place) error {
	if place.ID == uuid.Nil {
		place.ID = uuid.New()
	}

	now := time.Now()
	if place.CreatedAt.IsZero() {
		place.CreatedAt = now
	}
	place.UpdatedAt = now

	s.nextSeq++
	s.places[place.ID] = &record{place: *clonePlace(place), seq: s.nextSeq}

	return nil
}

func (s *Store) updateLocked(place *entity.Place) error {
	rec, ok := s.places[place.ID]
	if !ok {
		return repository.ErrPlaceNotFound
	}

	place.CreatedAt = rec.place.CreatedAt
	place.UpdatedAt = time.Now()
	rec.place = *clonePlace(place)

	return nil
}

func (s *Store) deleteLocked(id uuid.UUID) error {
	if _, ok := s.places[id]; !ok {
		return repository.ErrPlaceNotFound
	}

	delete(s.places, id)

	return nil
}

func (s *Store) listLocked(opts repository.ListOptions) []*entity.Place {
	records := make([]*record, 0, len(s.places))
	for _, rec := range s.places {
		if opts.Filter != "" && !matchesFilter(&rec.place, opts.Filter) {
			continue
		}
		records = append(records, rec)
	}

	// Insertion order is the base ordering and the tie break.
	sort.Slice(records, func(i, j int) bool { return records[i].seq < records[j].seq })

	if opts.SortBy.Valid() {
		sort.SliceStable(records, func(i, j int) bool {
			return lessByField(&records[i].place, &records[j].place, opts.SortBy, opts.Ascending)
		})
	}

	places := make([]*entity.Place, 0, len(records))
	for _, rec := range records {
		places = append(places, clonePlace(&rec.place))
	}

	return places
}

func (s *Store) snapshotLocked() map[uuid.UUID]*record {
	snapshot := make(map[uuid.UUID]*record, len(s.places))
	for id, rec := range s.places {
		cloned := *rec
		cloned.place = *clonePlace(&rec.place)
		snapshot[id] = &cloned
	}

	return snapshot
}

func matchesFilter(place *entity.Place, filter string) bool {
	needle := strings.ToLower(filter)

	return strings.Contains(strings.ToLower(place.Name), needle) ||
		strings.Contains(strings.ToLower(place.Location), needle)
}

func lessByField(a, b *entity.Place, field entity.SortField, ascending bool) bool {
	var cmp int
	switch field {
	case entity.SortByName:
		cmp = strings.Compare(a.Name, b.Name)
	case entity.SortByLocation:
		cmp = strings.Compare(a.Location, b.Location)
	case entity.SortByType:
		cmp = strings.Compare(a.Type, b.Type)
	case entity.SortByRating:
		switch {
		case a.Rating < b.Rating:
			cmp = -1
		case a.Rating > b.Rating:
			cmp = 1
		}
	}

	if !ascending {
		cmp = -cmp
	}

	// Equal keys report false so the stable sort keeps insertion order.
	return cmp < 0
}

func clonePlace(place *entity.Place) *entity.Place {
	cloned := *place
	if place.ImageData != nil {
		cloned.ImageData = make([]byte, len(place.ImageData))
		copy(cloned.ImageData, place.ImageData)
	}

	return &cloned
}
