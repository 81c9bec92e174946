package repository

import (
	"context"
	"time"

	"github.com/avelin/flightstore/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CartRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.CartLine, error)
	Add(ctx context.Context, userID, flightID int64, passengers int) (*domain.CartLine, bool, error)
	Remove(ctx context.Context, userID, flightID int64) error
	Clear(ctx context.Context, userID int64) error
}

type PGCartRepository struct {
	db *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) CartRepository {
	return &PGCartRepository{db: db}
}

func (r *PGCartRepository) ListByUser(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.user_id, c.flight_id, c.passengers_count, f.origin, f.destination, f.airline, f.departure_date, f.price_cents
		FROM cart c
		JOIN flights f ON c.flight_id = f.flight_id
		WHERE c.user_id = $1
		ORDER BY c.flight_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]domain.CartLine, 0)
	for rows.Next() {
		var l domain.CartLine
		var departure time.Time
		if err := rows.Scan(&l.UserID, &l.FlightID, &l.Passengers, &l.Origin, &l.Destination, &l.Airline, &departure, &l.PriceCents); err != nil {
			return nil, err
		}
		l.DepartureDate = departure.Format(time.RFC3339)
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// Add inserts a cart line or increments the passenger count when the flight
// is already in the cart. The bool result reports whether a new line was
// created (insert) as opposed to incremented.
func (r *PGCartRepository) Add(ctx context.Context, userID, flightID int64, passengers int) (*domain.CartLine, bool, error) {
	var line domain.CartLine
	var inserted bool
	err := r.db.QueryRow(ctx, `
		INSERT INTO cart (user_id, flight_id, passengers_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, flight_id)
		DO UPDATE SET passengers_count = cart.passengers_count + EXCLUDED.passengers_count
		RETURNING user_id, flight_id, passengers_count, (xmax = 0)`,
		userID, flightID, passengers).
		Scan(&line.UserID, &line.FlightID, &line.Passengers, &inserted)
	if err != nil {
		return nil, false, err
	}
	return &line, inserted, nil
}

func (r *PGCartRepository) Remove(ctx context.Context, userID, flightID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart WHERE user_id=$1 AND flight_id=$2`, userID, flightID)
	return err
}

func (r *PGCartRepository) Clear(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart WHERE user_id=$1`, userID)
	return err
}

var _ CartRepository = (*PGCartRepository)(nil)
