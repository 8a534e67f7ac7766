package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kenkai/internal/events"
	"kenkai/internal/metrics"
	"kenkai/internal/models"

	"github.com/rs/zerolog"
)

// Dispatcher turns domain events into emails and delivers them off the
// request path. Send failures are logged and discarded: fire-and-forget, no
// retries, no dead-letter handling.
type Dispatcher struct {
	sender Sender
	queue  chan Message
	logger zerolog.Logger
}

func NewDispatcher(sender Sender, logger *zerolog.Logger) *Dispatcher {
	var log zerolog.Logger
	if logger != nil {
		log = logger.With().Str("component", "mail-dispatcher").Logger()
	}
	return &Dispatcher{
		sender: sender,
		queue:  make(chan Message, models.MailQueueSize),
		logger: log,
	}
}

// Subscribe wires the dispatcher to the event bus. Handlers only enqueue;
// delivery happens in Start's goroutine.
func (d *Dispatcher) Subscribe(bus *events.EventBus) {
	bus.Subscribe(events.EventBookingCreated, d.onBookingCreated)
	bus.Subscribe(events.EventContactReceived, d.onContactReceived)
	bus.Subscribe(events.EventResourceLead, d.onResourceLead)
	bus.Subscribe(events.EventTalentInterest, d.onTalentInterest)
}

// Start consumes the queue until ctx is done.
func (d *Dispatcher) Start(ctx context.Context) {
	d.logger.Info().Msg("mail dispatcher started")
	defer d.logger.Info().Msg("mail dispatcher stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-d.queue:
			if err := d.sender.Send(msg); err != nil {
				metrics.IncMail("failed")
				d.logger.Error().Err(err).Str("subject", msg.Subject).Msg("mail send failed")
			}
		}
	}
}

func (d *Dispatcher) enqueue(msg Message) {
	select {
	case d.queue <- msg:
	default:
		d.logger.Warn().Str("subject", msg.Subject).Msg("mail queue full, message dropped")
	}
}

func (d *Dispatcher) onBookingCreated(event *events.Event) error {
	var p events.BookingEventPayload
	if err := json.Unmarshal(event.Payload, &p); err != nil {
		d.logger.Error().Err(err).Msg("decode booking event")
		return nil
	}

	d.enqueue(Message{
		ReplyTo: p.Email,
		Subject: fmt.Sprintf("New Booking: %s - %s", p.Service, p.Company),
		Body:    adminBookingBody(p),
	})
	d.enqueue(Message{
		To:      p.Email,
		Subject: fmt.Sprintf("Your consultation is booked for %s at %s", p.Date, p.Time),
		Body:    clientBookingBody(p),
	})
	return nil
}

func (d *Dispatcher) onContactReceived(event *events.Event) error {
	var p events.ContactEventPayload
	if err := json.Unmarshal(event.Payload, &p); err != nil {
		d.logger.Error().Err(err).Msg("decode contact event")
		return nil
	}

	d.enqueue(Message{
		ReplyTo: p.Email,
		Subject: fmt.Sprintf("Contact form: %s", p.Subject),
		Body: fmt.Sprintf("Name: %s\nEmail: %s\nCompany: %s\n\n%s\n",
			p.Name, p.Email, orDash(p.Company), p.Message),
	})
	return nil
}

func (d *Dispatcher) onResourceLead(event *events.Event) error {
	var p events.LeadEventPayload
	if err := json.Unmarshal(event.Payload, &p); err != nil {
		d.logger.Error().Err(err).Msg("decode resource lead event")
		return nil
	}

	d.enqueue(Message{
		Subject: "New resource download request",
		Body:    fmt.Sprintf("Email: %s\nResource: %s\n", p.Email, orDash(p.ResourceType)),
	})
	return nil
}

func (d *Dispatcher) onTalentInterest(event *events.Event) error {
	var p events.LeadEventPayload
	if err := json.Unmarshal(event.Payload, &p); err != nil {
		d.logger.Error().Err(err).Msg("decode talent interest event")
		return nil
	}

	d.enqueue(Message{
		Subject: "New Talent Interest Submission",
		Body:    fmt.Sprintf("A new talent interest was submitted: %s\nTimestamp: %s\n", p.Email, time.Now().UTC().Format(time.RFC3339)),
	})
	return nil
}

func adminBookingBody(p events.BookingEventPayload) string {
	return fmt.Sprintf(`New Booking Confirmed

Service: %s
Date: %s
Time: %s

Client Details:
Name: %s
Email: %s
Company: %s
Role: %s

Challenge: %s
Timeline: %s
Budget: %s

Booking ID: %s
Booked at: %s
`,
		p.Service, p.Date, p.Time,
		p.Name, p.Email, p.Company, orDash(p.Role),
		orDash(p.Challenge), orDash(p.Timeline), orDash(p.Budget),
		p.BookingID, p.CreatedAt.Format(time.RFC1123))
}

func clientBookingBody(p events.BookingEventPayload) string {
	return fmt.Sprintf(`Hi %s,

Your %s consultation is confirmed.

Date: %s
Time: %s

We look forward to speaking with you.

Booking reference: %s
`,
		p.Name, p.Service, p.Date, p.Time, p.BookingID)
}

func orDash(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}
