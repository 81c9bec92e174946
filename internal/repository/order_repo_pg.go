package repository

import (
	"context"
	"time"

	"github.com/avelin/flightstore/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CheckoutItem is one cart line as submitted at checkout time. PriceCents is
// taken from the request as-is and persisted without re-deriving it from the
// flight row.
type CheckoutItem struct {
	FlightID   int64
	Passengers int
	PriceCents int64
}

type OrderRepository interface {
	Checkout(ctx context.Context, order *domain.Order, items []CheckoutItem) error
	GetByID(ctx context.Context, orderID int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	MarkDeliveredBefore(ctx context.Context, deadline time.Time) ([]domain.Order, error)
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

// Checkout converts the submitted cart lines into a persisted order inside a
// single transaction:
//
//  1. insert the order row (status pending);
//  2. for each line, in submitted order: decrement the flight's
//     available_seats with a conditional UPDATE, then insert the appointment.
//     Zero rows affected means insufficient seats (or an unknown flight,
//     which looks identical) and aborts everything;
//  3. delete the user's entire cart;
//  4. commit.
//
// The conditional UPDATE is the only concurrency primitive: no rows are
// explicitly locked, and a racing checkout on the same flight simply sees the
// already-reduced count. Any failure rolls back every write, so inventory,
// orders and the cart are untouched by a failed attempt.
func (r *PGOrderRepository) Checkout(ctx context.Context, order *domain.Order, items []CheckoutItem) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	order.Status = domain.OrderStatusPending
	if err := tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, total_amount_cents, delivery_address, delivery_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING order_id, created_at`,
		order.UserID, order.TotalCents, order.DeliveryAddress, order.DeliveryDate, order.Status).
		Scan(&order.ID, &order.CreatedAt); err != nil {
		return err
	}

	for _, item := range items {
		res, err := tx.Exec(ctx, `
			UPDATE flights SET available_seats = available_seats - $2, updated_at = now()
			WHERE flight_id=$1 AND available_seats >= $2`,
			item.FlightID, item.Passengers)
		if err != nil {
			return err
		}
		if res.RowsAffected() == 0 {
			return &domain.InsufficientSeatsError{FlightID: item.FlightID}
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO appointments (order_id, flight_id, user_id, passengers_count, status)
			VALUES ($1, $2, $3, $4, $5)`,
			order.ID, item.FlightID, order.UserID, item.Passengers, domain.AppointmentStatusBooked); err != nil {
			return err
		}
	}

	// checkout empties the whole cart, not just the checked-out lines
	if _, err := tx.Exec(ctx, `DELETE FROM cart WHERE user_id=$1`, order.UserID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

const orderColumns = `o.order_id, o.user_id, o.total_amount_cents, o.delivery_address, o.delivery_date, o.status, o.created_at`

func (r *PGOrderRepository) GetByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`,
		       a.appointment_id, a.flight_id, a.passengers_count, a.status, a.seat_numbers, a.boarding_time, a.special_requests, a.created_at
		FROM orders o
		LEFT JOIN appointments a ON o.order_id = a.order_id
		WHERE o.order_id = $1
		ORDER BY a.appointment_id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domain.ErrOrderNotFound
	}
	return &orders[0], nil
}

func (r *PGOrderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`,
		       a.appointment_id, a.flight_id, a.passengers_count, a.status, a.seat_numbers, a.boarding_time, a.special_requests, a.created_at
		FROM orders o
		LEFT JOIN appointments a ON o.order_id = a.order_id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.order_id DESC, a.appointment_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

// MarkDeliveredBefore flips pending orders whose delivery date has passed to
// completed and returns them, for the worker's fulfillment sweep.
func (r *PGOrderRepository) MarkDeliveredBefore(ctx context.Context, deadline time.Time) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE orders SET status=$1
		WHERE status=$2 AND delivery_date <= $3
		RETURNING order_id, user_id, total_amount_cents, delivery_address, delivery_date, status, created_at`,
		domain.OrderStatusCompleted, domain.OrderStatusPending, deadline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completed []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalCents, &o.DeliveryAddress, &o.DeliveryDate, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		completed = append(completed, o)
	}
	return completed, rows.Err()
}

// collectOrders folds a joined order/appointment row set into orders with
// their appointments grouped underneath. An order without appointments keeps
// an empty, non-nil slice.
func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	orders := make([]domain.Order, 0)
	index := make(map[int64]int)

	for rows.Next() {
		var o domain.Order
		var (
			apptID     *int64
			flightID   *int64
			passengers *int
			status     *string
			seats      *string
			boarding   *time.Time
			requests   *string
			createdAt  *time.Time
		)
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalCents, &o.DeliveryAddress, &o.DeliveryDate, &o.Status, &o.CreatedAt,
			&apptID, &flightID, &passengers, &status, &seats, &boarding, &requests, &createdAt); err != nil {
			return nil, err
		}

		i, seen := index[o.ID]
		if !seen {
			o.Appointments = make([]domain.Appointment, 0, 1)
			orders = append(orders, o)
			i = len(orders) - 1
			index[o.ID] = i
		}

		if apptID != nil {
			appt := domain.Appointment{
				ID:           *apptID,
				OrderID:      o.ID,
				UserID:       o.UserID,
				FlightID:     *flightID,
				Passengers:   *passengers,
				Status:       domain.AppointmentStatus(*status),
				BoardingTime: boarding,
			}
			if seats != nil {
				appt.SeatNumbers = *seats
			}
			if requests != nil {
				appt.SpecialRequests = *requests
			}
			if createdAt != nil {
				appt.CreatedAt = *createdAt
			}
			orders[i].Appointments = append(orders[i].Appointments, appt)
		}
	}
	return orders, rows.Err()
}

var _ OrderRepository = (*PGOrderRepository)(nil)
