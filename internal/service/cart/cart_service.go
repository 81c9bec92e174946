package cart

import (
	"context"
	"fmt"

	"github.com/avelin/flightstore/internal/domain"
	"github.com/avelin/flightstore/internal/repository"
)

type CartUseCase interface {
	List(ctx context.Context, userID int64) ([]domain.CartLine, error)
	Add(ctx context.Context, userID, flightID int64, passengers int) (*domain.CartLine, bool, error)
	Remove(ctx context.Context, userID, flightID int64) error
	Clear(ctx context.Context, userID int64) error
}

type CartService struct {
	carts   repository.CartRepository
	flights repository.FlightRepository
}

func NewCartService(carts repository.CartRepository, flights repository.FlightRepository) *CartService {
	return &CartService{carts: carts, flights: flights}
}

func (s *CartService) List(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	return s.carts.ListByUser(ctx, userID)
}

// Add puts a flight into the cart, defaulting to one passenger. The cart is
// only a shopping list: seats are not reserved here, checkout re-validates
// every line against live inventory.
func (s *CartService) Add(ctx context.Context, userID, flightID int64, passengers int) (*domain.CartLine, bool, error) {
	if passengers == 0 {
		passengers = 1
	}
	if passengers < 0 {
		return nil, false, fmt.Errorf("%w: passengers count must be positive", domain.ErrValidation)
	}
	if _, err := s.flights.GetByID(ctx, flightID); err != nil {
		return nil, false, err
	}
	return s.carts.Add(ctx, userID, flightID, passengers)
}

func (s *CartService) Remove(ctx context.Context, userID, flightID int64) error {
	return s.carts.Remove(ctx, userID, flightID)
}

func (s *CartService) Clear(ctx context.Context, userID int64) error {
	return s.carts.Clear(ctx, userID)
}

var _ CartUseCase = (*CartService)(nil)
