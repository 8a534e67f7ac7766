package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"kenkai/internal/events"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type channelSender struct {
	sent chan Message
	err  error
}

func newChannelSender() *channelSender {
	return &channelSender{sent: make(chan Message, 16)}
}

func (s *channelSender) Send(msg Message) error {
	s.sent <- msg
	return s.err
}

func collect(t *testing.T, s *channelSender, n int) []Message {
	t.Helper()
	var out []Message
	for i := 0; i < n; i++ {
		select {
		case msg := <-s.sent:
			out = append(out, msg)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for message %d of %d", i+1, n)
		}
	}
	return out
}

func startDispatcher(t *testing.T, sender Sender) (*Dispatcher, *events.EventBus) {
	t.Helper()
	logger := zerolog.New(zerolog.NewConsoleWriter())
	d := NewDispatcher(sender, &logger)
	bus := events.NewEventBus()
	d.Subscribe(bus)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go d.Start(ctx)

	return d, bus
}

func TestDispatcherBookingCreated(t *testing.T) {
	sender := newChannelSender()
	_, bus := startDispatcher(t, sender)

	err := bus.PublishJSON(events.EventBookingCreated, events.BookingEventPayload{
		BookingID: "b-1",
		Date:      "2026-09-10",
		Time:      "10:00 AM",
		Name:      "Jordan Smith",
		Email:     "jordan@example.com",
		Company:   "Acme Inc",
		Service:   "Fractional CTO",
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	// One admin alert plus one client confirmation.
	msgs := collect(t, sender, 2)

	var admin, client *Message
	for i := range msgs {
		if msgs[i].To == "jordan@example.com" {
			client = &msgs[i]
		} else {
			admin = &msgs[i]
		}
	}
	require.NotNil(t, admin)
	require.NotNil(t, client)

	assert.Equal(t, "New Booking: Fractional CTO - Acme Inc", admin.Subject)
	assert.Equal(t, "jordan@example.com", admin.ReplyTo)
	assert.Contains(t, admin.Body, "Jordan Smith")
	assert.Contains(t, admin.Body, "Not provided") // optional fields left empty

	assert.Contains(t, client.Subject, "2026-09-10")
	assert.Contains(t, client.Body, "b-1")
}

func TestDispatcherContactReceived(t *testing.T) {
	sender := newChannelSender()
	_, bus := startDispatcher(t, sender)

	err := bus.PublishJSON(events.EventContactReceived, events.ContactEventPayload{
		Name:    "Sam Lee",
		Email:   "sam@example.com",
		Subject: "Consulting inquiry",
		Message: "We need help.",
	})
	require.NoError(t, err)

	msgs := collect(t, sender, 1)
	assert.Equal(t, "Contact form: Consulting inquiry", msgs[0].Subject)
	assert.Equal(t, "sam@example.com", msgs[0].ReplyTo)
	assert.Contains(t, msgs[0].Body, "We need help.")
}

func TestDispatcherLeadEvents(t *testing.T) {
	sender := newChannelSender()
	_, bus := startDispatcher(t, sender)

	require.NoError(t, bus.PublishJSON(events.EventResourceLead, events.LeadEventPayload{
		Email:        "sam@example.com",
		ResourceType: "tech-guide",
	}))
	require.NoError(t, bus.PublishJSON(events.EventTalentInterest, events.LeadEventPayload{
		Email: "dev@example.com",
	}))

	msgs := collect(t, sender, 2)
	assert.Contains(t, msgs[0].Body, "tech-guide")
	assert.Equal(t, "New Talent Interest Submission", msgs[1].Subject)
	assert.Contains(t, msgs[1].Body, "dev@example.com")
}

func TestDispatcherSendFailureIsSwallowed(t *testing.T) {
	sender := newChannelSender()
	sender.err = errors.New("smtp unreachable")
	_, bus := startDispatcher(t, sender)

	// Publishing succeeds regardless of delivery failing downstream.
	err := bus.PublishJSON(events.EventTalentInterest, events.LeadEventPayload{Email: "dev@example.com"})
	require.NoError(t, err)

	collect(t, sender, 1)
}

func TestDispatcherBadPayloadIgnored(t *testing.T) {
	sender := newChannelSender()
	logger := zerolog.New(zerolog.NewConsoleWriter())
	d := NewDispatcher(sender, &logger)

	err := d.onBookingCreated(&events.Event{
		Type:    events.EventBookingCreated,
		Payload: []byte("{not json"),
	})
	assert.NoError(t, err)
	assert.Empty(t, sender.sent)
}
