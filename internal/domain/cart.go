package domain

// CartLine is one (flight, passenger count) pairing awaiting checkout.
// Lines are owned by a single user and are consumed by a successful checkout.
type CartLine struct {
	UserID     int64 `json:"user_id"`
	FlightID   int64 `json:"flight_id"`
	Passengers int   `json:"passengers_count"`

	// Flight fields joined in for cart display.
	Origin        string `json:"origin,omitempty"`
	Destination   string `json:"destination,omitempty"`
	Airline       string `json:"airline,omitempty"`
	DepartureDate string `json:"departure_date,omitempty"`
	PriceCents    int64  `json:"price,omitempty"`
}
