// Package impl contains the concrete use case services of the catalog engine.
package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"placebook/internal/domain/entity"
	domainerrors "placebook/internal/domain/errors"
	"placebook/internal/domain/repository"
	"placebook/internal/usecase"

	"github.com/google/uuid"
)

type catalogService struct {
	txManager repository.TransactionManager
	repo      repository.PlaceRepository
	logger    *slog.Logger

	// writeMu serializes the single write path; holding it across commit
	// and publish keeps event order identical to commit order.
	writeMu sync.Mutex

	listenerMu   sync.RWMutex
	listeners    map[int]usecase.ChangeListener
	nextListener int
}

// NewCatalogService creates the catalog engine over a place repository and
// its transaction manager.
func NewCatalogService(txManager repository.TransactionManager, repo repository.PlaceRepository, logger *slog.Logger) usecase.CatalogUsecase {
	return &catalogService{
		txManager: txManager,
		repo:      repo,
		logger:    logger,
		listeners: make(map[int]usecase.ChangeListener),
	}
}

// CreatePlace validates the draft, assigns an ID and persists a new place.
func (s *catalogService) CreatePlace(ctx context.Context, draft *usecase.PlaceDraftInput) (*entity.Place, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	place := placeFromDraft(draft)
	place.ID = uuid.New()
	place.CreatedAt = time.Now()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		return factory.NewPlaceRepository().CreatePlace(ctx, place)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create place: %w", err)
	}

	s.publish(usecase.ChangeEvent{Kind: usecase.PlaceCreated, PlaceID: place.ID})

	return place, nil
}

// UpdatePlace overwrites all mutable fields of an existing place in one
// transaction; concurrent readers see the old or the new record, never a mix.
func (s *catalogService) UpdatePlace(ctx context.Context, id uuid.UUID, draft *usecase.PlaceDraftInput) (*entity.Place, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	place := placeFromDraft(draft)
	place.ID = id

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		return factory.NewPlaceRepository().UpdatePlace(ctx, place)
	})
	if err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return nil, domainerrors.ErrPlaceNotFound
		}

		return nil, fmt.Errorf("failed to update place: %w", err)
	}

	s.publish(usecase.ChangeEvent{Kind: usecase.PlaceUpdated, PlaceID: id})

	return place, nil
}

// DeletePlace removes a place. A second delete of the same ID fails with
// not-found and leaves the collection intact.
func (s *catalogService) DeletePlace(ctx context.Context, id uuid.UUID) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		return factory.NewPlaceRepository().DeletePlace(ctx, id)
	})
	if err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return domainerrors.ErrPlaceNotFound
		}

		return fmt.Errorf("failed to delete place: %w", err)
	}

	s.publish(usecase.ChangeEvent{Kind: usecase.PlaceDeleted, PlaceID: id})

	return nil
}

// GetPlace retrieves a single place by ID.
func (s *catalogService) GetPlace(ctx context.Context, id uuid.UUID) (*entity.Place, error) {
	place, err := s.repo.FindPlaceByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return nil, domainerrors.ErrPlaceNotFound
		}

		return nil, fmt.Errorf("failed to find place by ID: %w", err)
	}

	return place, nil
}

// ListPlaces retrieves a one-shot sorted/filtered listing.
func (s *catalogService) ListPlaces(ctx context.Context, input usecase.ListInput) ([]*entity.Place, error) {
	if input.SortBy != "" && !input.SortBy.Valid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails(
			fmt.Sprintf("unknown sort field %q", input.SortBy))
	}

	places, err := s.repo.ListPlaces(ctx, repository.ListOptions{
		SortBy:    input.SortBy,
		Ascending: input.Ascending,
		Filter:    input.Filter,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}

	return places, nil
}

// Subscribe registers a change listener and returns its detach func.
func (s *catalogService) Subscribe(listener usecase.ChangeListener) func() {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners[id] = listener

	return func() {
		s.listenerMu.Lock()
		defer s.listenerMu.Unlock()
		delete(s.listeners, id)
	}
}

// OpenView opens a live listing bound to this catalog.
func (s *catalogService) OpenView(ctx context.Context, input usecase.ListInput) (usecase.PlaceView, error) {
	return newPlaceView(ctx, s, input, s.logger)
}

func (s *catalogService) publish(event usecase.ChangeEvent) {
	s.listenerMu.RLock()
	listeners := make([]usecase.ChangeListener, 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}
	s.listenerMu.RUnlock()

	for _, listener := range listeners {
		listener(event)
	}
}

func validateDraft(draft *usecase.PlaceDraftInput) error {
	if draft == nil {
		return domainerrors.ErrValidationFailed.WithDetails("draft is required")
	}

	if strings.TrimSpace(draft.Name) == "" {
		return domainerrors.ErrEmptyPlaceName
	}

	return nil
}

func placeFromDraft(draft *usecase.PlaceDraftInput) *entity.Place {
	return &entity.Place{
		Name:      draft.Name,
		Location:  draft.Location,
		Type:      draft.Type,
		ImageData: draft.ImageData,
		Rating:    entity.ClampRating(draft.Rating),
	}
}
