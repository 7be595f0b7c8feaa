package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"placebook/internal/domain/entity"
	domainerrors "placebook/internal/domain/errors"
	"placebook/internal/usecase"
)

// placeView is a live projection over a catalog. It holds its own sort and
// filter parameters, re-derives by querying the catalog, and notifies its
// listeners after each re-derivation.
type placeView struct {
	catalog *catalogService
	logger  *slog.Logger

	mu        sync.RWMutex
	input     usecase.ListInput
	snapshot  []*entity.Place
	closed    bool
	detach    func()
	listeners map[int]func()
	nextID    int
}

func newPlaceView(ctx context.Context, catalog *catalogService, input usecase.ListInput, logger *slog.Logger) (*placeView, error) {
	if input.SortBy == "" {
		input.SortBy = entity.SortByName
		input.Ascending = true
	}
	if !input.SortBy.Valid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails(
			fmt.Sprintf("unknown sort field %q", input.SortBy))
	}

	view := &placeView{
		catalog:   catalog,
		logger:    logger,
		input:     input,
		listeners: make(map[int]func()),
	}

	if err := view.rederive(ctx); err != nil {
		return nil, err
	}

	// Subscribing after the initial derivation is safe: the catalog's write
	// path is serialized, so no event can be lost between the two.
	view.detach = catalog.Subscribe(func(usecase.ChangeEvent) {
		if err := view.rederive(context.Background()); err != nil {
			logger.Error("place view re-derivation failed", slog.Any("error", err))
		}
	})

	return view, nil
}

// Places returns the current derived snapshot.
func (v *placeView) Places() []*entity.Place {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]*entity.Place, len(v.snapshot))
	copy(out, v.snapshot)

	return out
}

// SetSort changes the sort key and direction and re-derives once.
func (v *placeView) SetSort(ctx context.Context, field entity.SortField, ascending bool) error {
	if !field.Valid() {
		return domainerrors.ErrValidationFailed.WithDetails(
			fmt.Sprintf("unknown sort field %q", field))
	}

	v.mu.Lock()
	v.input.SortBy = field
	v.input.Ascending = ascending
	v.mu.Unlock()

	return v.rederive(ctx)
}

// SetFilter changes the substring filter and re-derives once. Empty text
// deactivates the filter.
func (v *placeView) SetFilter(ctx context.Context, text string) error {
	v.mu.Lock()
	v.input.Filter = text
	v.mu.Unlock()

	return v.rederive(ctx)
}

// Listen registers a callback invoked after each re-derivation.
func (v *placeView) Listen(fn func()) func() {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.nextID
	v.nextID++
	v.listeners[id] = fn

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.listeners, id)
	}
}

// Close detaches the view from the catalog. The last snapshot stays readable.
func (v *placeView) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()

		return
	}
	v.closed = true
	detach := v.detach
	v.mu.Unlock()

	if detach != nil {
		detach()
	}
}

func (v *placeView) rederive(ctx context.Context) error {
	v.mu.RLock()
	if v.closed {
		v.mu.RUnlock()

		return nil
	}
	input := v.input
	v.mu.RUnlock()

	places, err := v.catalog.ListPlaces(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to derive place view: %w", err)
	}

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()

		return nil
	}
	v.snapshot = places
	listeners := make([]func(), 0, len(v.listeners))
	for _, fn := range v.listeners {
		listeners = append(listeners, fn)
	}
	v.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}

	return nil
}
