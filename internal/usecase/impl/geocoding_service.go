package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"placebook/internal/domain/entity"
	domainerrors "placebook/internal/domain/errors"
	"placebook/internal/domain/service"
	"placebook/internal/usecase"
)

// requestSlot tracks the latest request of one direction. Starting a new
// request bumps the sequence and cancels the previous in-flight call, so a
// superseded completion can never apply its result.
type requestSlot struct {
	seq    uint64
	cancel context.CancelFunc
}

type geocodingService struct {
	provider service.GeocodingProvider
	logger   *slog.Logger

	mu      sync.Mutex
	forward requestSlot
	reverse requestSlot
}

// NewGeocodingService creates the address resolver over a geocoding provider.
func NewGeocodingService(provider service.GeocodingProvider, logger *slog.Logger) usecase.GeocodingUsecase {
	return &geocodingService{
		provider: provider,
		logger:   logger,
	}
}

// ResolveAddress resolves a free-text address to its first match. A newer
// call supersedes this one mid-flight.
func (s *geocodingService) ResolveAddress(ctx context.Context, address string) (*service.Placemark, error) {
	callCtx, seq := s.begin(ctx, &s.forward)
	defer s.finish(&s.forward, seq)

	placemark, err := s.provider.Forward(callCtx, address)
	if s.superseded(&s.forward, seq) {
		return nil, domainerrors.ErrRequestSuperseded
	}
	if err != nil {
		if errors.Is(err, service.ErrNoMatch) {
			return nil, domainerrors.ErrAddressNotFound
		}

		return nil, domainerrors.ErrGeocodingFailed.WrapMessage(
			fmt.Sprintf("failed to resolve address: %s", err))
	}

	return placemark, nil
}

// ReverseGeocode resolves a coordinate to a short street address. Safe to
// call on every map pan; only the newest call's result survives.
func (s *geocodingService) ReverseGeocode(ctx context.Context, coord entity.Coordinate) (string, error) {
	if !coord.Valid() {
		return "", domainerrors.ErrValidationFailed.WithDetails("coordinate out of range")
	}

	callCtx, seq := s.begin(ctx, &s.reverse)
	defer s.finish(&s.reverse, seq)

	address, err := s.provider.Reverse(callCtx, coord)
	if s.superseded(&s.reverse, seq) {
		return "", domainerrors.ErrRequestSuperseded
	}
	if err != nil {
		return "", domainerrors.ErrGeocodingFailed.WrapMessage(
			fmt.Sprintf("failed to reverse geocode: %s", err))
	}

	return address, nil
}

// begin claims the slot: cancels the previous in-flight call and installs a
// fresh cancelable context under a new sequence number.
func (s *geocodingService) begin(ctx context.Context, slot *requestSlot) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slot.cancel != nil {
		slot.cancel()
	}

	callCtx, cancel := context.WithCancel(ctx)
	slot.seq++
	slot.cancel = cancel

	return callCtx, slot.seq
}

// finish releases the slot's context if this call is still the latest.
func (s *geocodingService) finish(slot *requestSlot, seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slot.seq == seq && slot.cancel != nil {
		slot.cancel()
		slot.cancel = nil
	}
}

func (s *geocodingService) superseded(slot *requestSlot, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slot.seq != seq
}
