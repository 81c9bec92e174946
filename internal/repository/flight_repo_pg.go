package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelin/flightstore/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Reserve(ctx context.Context, flightID int64, count int) error
	Release(ctx context.Context, flightID int64, count int) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `flight_id, origin, destination, departure_date, arrival_date, airline, price_cents, duration_minutes, available_seats, description, created_at, updated_at`

func (r *PGFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights WHERE available_seats > 0`
	args := make([]any, 0, 5)

	if filter.Origin != "" {
		args = append(args, "%"+filter.Origin+"%")
		query += fmt.Sprintf(" AND origin ILIKE $%d", len(args))
	}
	if filter.Destination != "" {
		args = append(args, "%"+filter.Destination+"%")
		query += fmt.Sprintf(" AND destination ILIKE $%d", len(args))
	}
	if filter.Airline != "" {
		args = append(args, "%"+filter.Airline+"%")
		query += fmt.Sprintf(" AND airline ILIKE $%d", len(args))
	}
	if filter.MinPrice > 0 {
		args = append(args, filter.MinPrice)
		query += fmt.Sprintf(" AND price_cents >= $%d", len(args))
	}
	if filter.MaxPrice > 0 {
		args = append(args, filter.MaxPrice)
		query += fmt.Sprintf(" AND price_cents <= $%d", len(args))
	}
	query += " ORDER BY departure_date ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.Origin, &f.Destination, &f.DepartureDate, &f.ArrivalDate, &f.Airline, &f.PriceCents, &f.DurationMin, &f.AvailableSeats, &f.Description, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE flight_id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.Origin, &f.Destination, &f.DepartureDate, &f.ArrivalDate, &f.Airline, &f.PriceCents, &f.DurationMin, &f.AvailableSeats, &f.Description, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

// Reserve decrements available_seats by count in a single conditional UPDATE.
// The comparison and the write are one atomic statement, so two racing
// reservations on the same flight serialize at the storage layer and the
// counter can never go negative.
func (r *PGFlightRepository) Reserve(ctx context.Context, flightID int64, count int) error {
	res, err := r.db.Exec(ctx, `UPDATE flights SET available_seats = available_seats - $2, updated_at = now() WHERE flight_id=$1 AND available_seats >= $2`, flightID, count)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return &domain.InsufficientSeatsError{FlightID: flightID}
	}
	return nil
}

func (r *PGFlightRepository) Release(ctx context.Context, flightID int64, count int) error {
	res, err := r.db.Exec(ctx, `UPDATE flights SET available_seats = available_seats + $2, updated_at = now() WHERE flight_id=$1`, flightID, count)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
