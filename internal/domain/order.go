package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "booked"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type Order struct {
	ID              int64         `json:"order_id"`
	UserID          int64         `json:"user_id"`
	TotalCents      int64         `json:"total_amount"`
	DeliveryAddress string        `json:"delivery_address"`
	DeliveryDate    time.Time     `json:"delivery_date"`
	Status          OrderStatus   `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	Appointments    []Appointment `json:"appointments"`
}

// Appointment is one booked flight inside an order. Appointments only come
// into existence as part of a committed checkout, one per cart line.
type Appointment struct {
	ID              int64             `json:"appointment_id"`
	OrderID         int64             `json:"order_id"`
	FlightID        int64             `json:"flight_id"`
	UserID          int64             `json:"user_id"`
	Passengers      int               `json:"passengers_count"`
	Status          AppointmentStatus `json:"status"`
	SeatNumbers     string            `json:"seat_numbers,omitempty"`
	BoardingTime    *time.Time        `json:"boarding_time,omitempty"`
	SpecialRequests string            `json:"special_requests,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}
