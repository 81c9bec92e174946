package domain

import "time"

type Flight struct {
	ID             int64     `json:"flight_id"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartureDate  time.Time `json:"departure_date"`
	ArrivalDate    time.Time `json:"arrival_date"`
	Airline        string    `json:"airline"`
	PriceCents     int64     `json:"price"`
	DurationMin    int       `json:"duration"`
	AvailableSeats int       `json:"available_seats"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FlightFilter narrows the catalog listing. Zero values mean "no filter".
type FlightFilter struct {
	Origin      string
	Destination string
	Airline     string
	MinPrice    int64
	MaxPrice    int64
}

func (f FlightFilter) Empty() bool {
	return f.Origin == "" && f.Destination == "" && f.Airline == "" && f.MinPrice == 0 && f.MaxPrice == 0
}
