package reviews

import (
	"context"
	"testing"

	"github.com/avelin/flightstore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.Review, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
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

func TestReviewService_Create_success(t *testing.T) {
	reviews := &MockReviewRepository{}
	flights := &MockFlightRepository{}
	service := NewReviewService(reviews, flights)

	flights.On("GetByID", mock.Anything, int64(3)).Return(&domain.Flight{ID: 3}, nil)
	reviews.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Review) bool {
		return r.UserID == 7 && r.FlightID == 3 && r.Rating == 5
	})).Return(nil)

	review, err := service.Create(context.Background(), 7, 3, 5, "smooth flight")

	assert.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	reviews.AssertExpectations(t)
}

func TestReviewService_Create_ratingOutOfRange(t *testing.T) {
	reviews := &MockReviewRepository{}
	service := NewReviewService(reviews, &MockFlightRepository{})

	for _, rating := range []int{0, 6, -1} {
		review, err := service.Create(context.Background(), 7, 3, rating, "")
		assert.Nil(t, review)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_Create_duplicate(t *testing.T) {
	reviews := &MockReviewRepository{}
	flights := &MockFlightRepository{}
	service := NewReviewService(reviews, flights)

	flights.On("GetByID", mock.Anything, int64(3)).Return(&domain.Flight{ID: 3}, nil)
	reviews.On("Create", mock.Anything, mock.Anything).Return(domain.ErrReviewExists)

	review, err := service.Create(context.Background(), 7, 3, 4, "again")

	assert.Nil(t, review)
	assert.ErrorIs(t, err, domain.ErrReviewExists)
}
