package flights

import (
	"context"
	"testing"

	"github.com/avelin/flightstore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

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

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func TestFlightService_List_cacheHit(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockCache{}
	service := NewFlightService(repo, cache)

	cached := []domain.Flight{{ID: 1, Origin: "Moscow"}}
	cache.On("GetFlights", mock.Anything).Return(cached, nil)

	flights, err := service.List(context.Background(), domain.FlightFilter{})

	assert.NoError(t, err)
	assert.Equal(t, cached, flights)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestFlightService_List_cacheMiss(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockCache{}
	service := NewFlightService(repo, cache)

	fresh := []domain.Flight{{ID: 2, Origin: "Kazan"}}
	cache.On("GetFlights", mock.Anything).Return(nil, nil)
	repo.On("List", mock.Anything, domain.FlightFilter{}).Return(fresh, nil)
	cache.On("SetFlights", mock.Anything, fresh).Return(nil)

	flights, err := service.List(context.Background(), domain.FlightFilter{})

	assert.NoError(t, err)
	assert.Equal(t, fresh, flights)
	cache.AssertExpectations(t)
}

func TestFlightService_List_filteredBypassesCache(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockCache{}
	service := NewFlightService(repo, cache)

	filter := domain.FlightFilter{Destination: "Sochi"}
	repo.On("List", mock.Anything, filter).Return([]domain.Flight{}, nil)

	_, err := service.List(context.Background(), filter)

	assert.NoError(t, err)
	cache.AssertNotCalled(t, "GetFlights", mock.Anything)
	cache.AssertNotCalled(t, "SetFlights", mock.Anything, mock.Anything)
}

func TestFlightService_List_noCache(t *testing.T) {
	repo := &MockFlightRepository{}
	service := NewFlightService(repo, nil)

	repo.On("List", mock.Anything, domain.FlightFilter{}).Return([]domain.Flight{}, nil)

	_, err := service.List(context.Background(), domain.FlightFilter{})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
