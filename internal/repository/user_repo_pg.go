package repository

import (
	"context"
	"errors"

	"github.com/avelin/flightstore/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (full_name, email, password_hash, phone, default_address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING user_id, created_at`,
		user.FullName, user.Email, user.PasswordHash, user.Phone, user.DefaultAddress).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PGUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT user_id, full_name, email, password_hash, phone, default_address, created_at FROM users WHERE email=$1`, email)
	return scanUser(row)
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT user_id, full_name, email, password_hash, phone, default_address, created_at FROM users WHERE user_id=$1`, id)
	return scanUser(row)
}

func (r *PGUserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	res, err := r.db.Exec(ctx, `UPDATE users SET full_name=$1, phone=$2, default_address=$3 WHERE user_id=$4`,
		user.FullName, user.Phone, user.DefaultAddress, user.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *PGUserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	res, err := r.db.Exec(ctx, `UPDATE users SET password_hash=$1 WHERE user_id=$2`, passwordHash, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Phone, &u.DefaultAddress, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

var _ UserRepository = (*PGUserRepository)(nil)
