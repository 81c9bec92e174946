package orders

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/avelin/flightstore/internal/domain"
	"github.com/avelin/flightstore/internal/kafka"
	"github.com/avelin/flightstore/internal/repository"
)

type OrderUseCase interface {
	Checkout(ctx context.Context, input CheckoutInput) (*domain.Order, error)
	GetOrder(ctx context.Context, userID, orderID int64) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int64) ([]domain.Order, error)
	CompleteDelivered(ctx context.Context) ([]domain.Order, error)
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CheckoutItem struct {
	FlightID   int64 `json:"flight_id"`
	Passengers int   `json:"passengers_count"`
	PriceCents int64 `json:"price"`
}

type CheckoutInput struct {
	UserID          int64
	Email           string
	DeliveryAddress string
	DeliveryDate    time.Time
	Items           []CheckoutItem
	TotalCents      int64
}

type OrderService struct {
	orders             repository.OrderRepository
	cache              Cache
	producer           Producer
	orderTopic         string
	notificationsTopic string
}

type OrderServiceOption func(*OrderService)

func WithNotificationsTopic(topic string) OrderServiceOption {
	return func(s *OrderService) {
		s.notificationsTopic = topic
	}
}

func NewOrderService(orders repository.OrderRepository, cache Cache, producer Producer, orderTopic string, opts ...OrderServiceOption) *OrderService {
	service := &OrderService{
		orders:     orders,
		cache:      cache,
		producer:   producer,
		orderTopic: orderTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Checkout validates the submitted cart lines and hands them to the storage
// layer, which applies them in one transaction. Validation happens before any
// database work so a malformed request never touches inventory. The read-back
// after commit runs outside the transaction; the rows are immutable by then.
func (s *OrderService) Checkout(ctx context.Context, input CheckoutInput) (*domain.Order, error) {
	if strings.TrimSpace(input.DeliveryAddress) == "" {
		return nil, fmt.Errorf("%w: delivery address is required", domain.ErrValidation)
	}
	if input.DeliveryDate.IsZero() {
		return nil, fmt.Errorf("%w: delivery date is required", domain.ErrValidation)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrValidation)
	}
	for _, item := range input.Items {
		if item.Passengers <= 0 {
			return nil, fmt.Errorf("%w: passengers count must be positive for flight %d", domain.ErrValidation, item.FlightID)
		}
	}

	order := &domain.Order{
		UserID:          input.UserID,
		TotalCents:      input.TotalCents,
		DeliveryAddress: input.DeliveryAddress,
		DeliveryDate:    input.DeliveryDate,
	}
	items := make([]repository.CheckoutItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, repository.CheckoutItem{
			FlightID:   item.FlightID,
			Passengers: item.Passengers,
			PriceCents: item.PriceCents,
		})
	}

	if err := s.orders.Checkout(ctx, order, items); err != nil {
		return nil, err
	}

	created, err := s.orders.GetByID(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("read back order %d: %w", order.ID, err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			log.Printf("invalidate flights cache: %v", err)
		}
	}
	s.publish(ctx, "order_created", created, input.Email)

	return created, nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// CompleteDelivered marks pending orders past their delivery date as
// completed and emits an event per order. Called by the worker's sweep.
func (s *OrderService) CompleteDelivered(ctx context.Context) ([]domain.Order, error) {
	completed, err := s.orders.MarkDeliveredBefore(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	for i := range completed {
		s.publish(ctx, "order_completed", &completed[i], "")
	}
	return completed, nil
}

func (s *OrderService) publish(ctx context.Context, eventType string, order *domain.Order, email string) {
	if s.producer == nil || s.orderTopic == "" {
		return
	}
	event := kafka.OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Email:      email,
		TotalCents: order.TotalCents,
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt,
	}
	key := fmt.Sprintf("%d", order.ID)
	if err := s.producer.Publish(ctx, s.orderTopic, key, event); err != nil {
		log.Printf("publish %s event for order %d: %v", eventType, order.ID, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			log.Printf("publish notification for order %d: %v", order.ID, err)
		}
	}
}

var _ OrderUseCase = (*OrderService)(nil)
