package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"honeycomb-backend/internal/domain"
	"honeycomb-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	if s.apiKey == "" {
		// No key configured (dev environments) - log instead of sending.
		logger.Debug("Email delivery skipped, no API key", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendFlagJoinedNotification(ctx context.Context, email, name, subject string) error {
	body := fmt.Sprintf("Hello %s,\n\nA moderator has joined the discussion on the flag %q you are participating in.\n\nThe Honeycomb Team", name, subject)
	return s.send(email, name, fmt.Sprintf("Moderator joined flag: %s", subject), body)
}

func (s *emailService) SendFlagResolvedNotification(ctx context.Context, email, name, subject, resolution string) error {
	body := fmt.Sprintf("Hello %s,\n\nThe flag %q you reported has been resolved:\n\n%s\n\nThe Honeycomb Team", name, subject, resolution)
	return s.send(email, name, fmt.Sprintf("Flag resolved: %s", subject), body)
}

func (s *emailService) SendApplicationClaimedNotification(ctx context.Context, email, name string, appType domain.ApplicationType) error {
	body := fmt.Sprintf("Hello %s,\n\nA moderator is now reviewing your %s application. You will hear back once a decision is made.\n\nThe Honeycomb Team", name, appType)
	return s.send(email, name, "Your application is being reviewed", body)
}

func (s *emailService) SendApplicationResolvedNotification(ctx context.Context, email, name string, appType domain.ApplicationType, resolution domain.ApplicationResolution) error {
	body := fmt.Sprintf("Hello %s,\n\nYour %s application was %s.\n\nThe Honeycomb Team", name, appType, resolution)
	return s.send(email, name, fmt.Sprintf("Application %s", resolution), body)
}

func (s *emailService) SendBanNotification(ctx context.Context, email, name, reason string, lifted bool) error {
	if lifted {
		body := fmt.Sprintf("Hello %s,\n\nThe restriction on your account has been lifted.\n\nThe Honeycomb Team", name)
		return s.send(email, name, "Account restriction lifted", body)
	}
	body := fmt.Sprintf("Hello %s,\n\nYour account has been restricted: %s\n\nThe Honeycomb Team", name, reason)
	return s.send(email, name, "Account restricted", body)
}
