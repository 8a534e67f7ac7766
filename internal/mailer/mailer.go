package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"kenkai/internal/config"
	"kenkai/internal/metrics"

	"github.com/rs/zerolog"
)

// Message is one outbound email.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Sender delivers a message. Delivery is always best-effort from the
// caller's point of view.
type Sender interface {
	Send(msg Message) error
}

// SMTPSender sends mail over plain SMTP. When the transport is not
// configured it degrades to logging the intended message; no-op delivery is
// not an error.
type SMTPSender struct {
	cfg config.SMTPConfig
	log zerolog.Logger
}

func NewSMTPSender(cfg config.SMTPConfig, logger *zerolog.Logger) *SMTPSender {
	var log zerolog.Logger
	if logger != nil {
		log = logger.With().Str("component", "mailer").Logger()
	}
	return &SMTPSender{cfg: cfg, log: log}
}

func (s *SMTPSender) configured() bool {
	return s.cfg.Host != "" && s.cfg.User != "" && s.cfg.Password != ""
}

func (s *SMTPSender) Send(msg Message) error {
	if msg.To == "" {
		msg.To = s.cfg.To
	}
	if msg.To == "" {
		s.log.Warn().Str("subject", msg.Subject).Msg("mail dropped: no recipient configured")
		return nil
	}

	if !s.configured() {
		s.log.Info().
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Msg("smtp not configured, mail logged only")
		metrics.IncMail("skipped")
		return nil
	}

	from := s.cfg.From
	if from == "" {
		from = s.cfg.User
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(msg.Body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	if err := smtp.SendMail(addr, auth, from, []string{msg.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	s.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("mail sent")
	metrics.IncMail("sent")
	return nil
}
