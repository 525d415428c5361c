package email

import (
	"context"
)

type Service interface {
	SendBookingConfirmation(ctx context.Context, to, doctorName, date, timeSlot string) error
	SendCancellation(ctx context.Context, to, doctorName, date, timeSlot string) error
	SendWelcome(ctx context.Context, to, name string) error
}

// NoopService discards all mail; used in tests and when SMTP is not
// configured.
type NoopService struct{}

func (NoopService) SendBookingConfirmation(ctx context.Context, to, doctorName, date, timeSlot string) error {
	return nil
}

func (NoopService) SendCancellation(ctx context.Context, to, doctorName, date, timeSlot string) error {
	return nil
}

func (NoopService) SendWelcome(ctx context.Context, to, name string) error {
	return nil
}
