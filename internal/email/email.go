package email

import (
	"context"
	"log"

	"github.com/avelin/flightstore/internal/kafka"
)

// Sender delivers order notifications. The transport is a stub: it logs the
// message, standing in for a real mail gateway.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	log.Printf("send email to %s: order %d is %s (total %d)", event.Email, event.OrderID, event.Status, event.TotalCents)
	return nil
}
