package cart

import (
	"context"
	"testing"

	"github.com/avelin/flightstore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) ListByUser(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartLine), args.Error(1)
}

func (m *MockCartRepository) Add(ctx context.Context, userID, flightID int64, passengers int) (*domain.CartLine, bool, error) {
	args := m.Called(ctx, userID, flightID, passengers)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.CartLine), args.Bool(1), args.Error(2)
}

func (m *MockCartRepository) Remove(ctx context.Context, userID, flightID int64) error {
	args := m.Called(ctx, userID, flightID)
	return args.Error(0)
}

func (m *MockCartRepository) Clear(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Reserve(ctx context.Context, flightID int64, count int) error {
	args := m.Called(ctx, flightID, count)
	return args.Error(0)
}

func (m *MockFlightRepository) Release(ctx context.Context, flightID int64, count int) error {
	args := m.Called(ctx, flightID, count)
	return args.Error(0)
}

func TestCartService_Add_defaultsToOnePassenger(t *testing.T) {
	carts := &MockCartRepository{}
	flights := &MockFlightRepository{}
	service := NewCartService(carts, flights)

	flights.On("GetByID", mock.Anything, int64(3)).Return(&domain.Flight{ID: 3}, nil)
	carts.On("Add", mock.Anything, int64(7), int64(3), 1).
		Return(&domain.CartLine{UserID: 7, FlightID: 3, Passengers: 1}, true, nil)

	line, created, err := service.Add(context.Background(), 7, 3, 0)

	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, line.Passengers)
}

func TestCartService_Add_unknownFlight(t *testing.T) {
	carts := &MockCartRepository{}
	flights := &MockFlightRepository{}
	service := NewCartService(carts, flights)

	flights.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrFlightNotFound)

	_, _, err := service.Add(context.Background(), 7, 99, 1)

	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
	carts.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartService_Add_negativePassengers(t *testing.T) {
	carts := &MockCartRepository{}
	flights := &MockFlightRepository{}
	service := NewCartService(carts, flights)

	_, _, err := service.Add(context.Background(), 7, 3, -2)

	assert.ErrorIs(t, err, domain.ErrValidation)
	flights.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
