package email

import (
	"context"
	"fmt"

	"flightdesk/internal/kafka"
)

// Sender renders booking notifications. Delivery is a stub printing to
// stdout; the SMTP integration is configured per deployment.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, to string, event kafka.BookingEvent) error {
	fmt.Printf("notify %s: %s for booking %s (flight %d, status %s)\n",
		to, event.Type, event.PNR, event.FlightID, event.Status)
	return nil
}
