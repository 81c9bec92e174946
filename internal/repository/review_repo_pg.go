package repository

import (
	"context"
	"errors"

	"github.com/avelin/flightstore/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewRepository interface {
	ListByFlight(ctx context.Context, flightID int64) ([]domain.Review, error)
	Create(ctx context.Context, review *domain.Review) error
}

type PGReviewRepository struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) ReviewRepository {
	return &PGReviewRepository{db: db}
}

func (r *PGReviewRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.Review, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.review_id, r.user_id, r.flight_id, r.rating, r.comment, u.full_name, r.created_at
		FROM reviews r
		JOIN users u ON r.user_id = u.user_id
		WHERE r.flight_id = $1
		ORDER BY r.created_at DESC`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.FlightID, &rv.Rating, &rv.Comment, &rv.FullName, &rv.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *PGReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO reviews (user_id, flight_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING review_id, created_at`,
		review.UserID, review.FlightID, review.Rating, review.Comment).
		Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrReviewExists
		}
		return err
	}
	return nil
}

var _ ReviewRepository = (*PGReviewRepository)(nil)
