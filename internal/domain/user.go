package domain

import "time"

type User struct {
	ID             int64     `json:"user_id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Phone          string    `json:"phone"`
	DefaultAddress string    `json:"default_address"`
	CreatedAt      time.Time `json:"created_at"`
}

type Review struct {
	ID        int64     `json:"review_id"`
	UserID    int64     `json:"user_id"`
	FlightID  int64     `json:"flight_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
