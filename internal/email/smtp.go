package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendBookingConfirmation(ctx context.Context, to, doctorName, date, timeSlot string) error {
	subject := "Appointment confirmed"
	body := fmt.Sprintf(
		"Your appointment with %s on %s at %s is confirmed.",
		doctorName, date, timeSlot,
	)
	return s.send(to, subject, body)
}

func (s *smtpService) SendCancellation(ctx context.Context, to, doctorName, date, timeSlot string) error {
	subject := "Appointment cancelled"
	body := fmt.Sprintf(
		"Your appointment with %s on %s at %s has been cancelled.",
		doctorName, date, timeSlot,
	)
	return s.send(to, subject, body)
}

func (s *smtpService) SendWelcome(ctx context.Context, to, name string) error {
	subject := "Welcome"
	body := fmt.Sprintf("Welcome %s! Your account has been created.", name)
	return s.send(to, subject, body)
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
