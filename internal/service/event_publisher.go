package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Event subjects are suffixed onto the configured base subject.
const (
	SubjectApplicationDecided = "approvals.application"
	SubjectClassDecided       = "approvals.class"
	SubjectEnrollment         = "enrollments"
)

// DomainEvent is the envelope published for every state change other services may react to.
type DomainEvent struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

// EventPublisher fans domain events out to a broker.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
}

type natsEventPublisher struct {
	conn   *nats.Conn
	base   string
	logger zerolog.Logger
	now    func() time.Time
}

// NewEventPublisher returns a NATS backed publisher. A nil connection yields a publisher that drops events.
func NewEventPublisher(conn *nats.Conn, base string, logger zerolog.Logger) EventPublisher {
	return &natsEventPublisher{
		conn:   conn,
		base:   strings.Trim(strings.TrimSpace(base), "."),
		logger: logger.With().Str("component", "event_publisher").Logger(),
		now:    time.Now,
	}
}

func (p *natsEventPublisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	if p == nil || p.conn == nil {
		return nil
	}

	fullSubject := subject
	if p.base != "" {
		fullSubject = p.base + "." + subject
	}

	data, err := json.Marshal(DomainEvent{
		Type:       subject,
		OccurredAt: p.now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return err
	}

	if err := p.conn.Publish(fullSubject, data); err != nil {
		p.logger.Warn().Err(err).Str("subject", fullSubject).Msg("failed to publish domain event")
		return err
	}

	return nil
}

type noopEventPublisher struct{}

func (noopEventPublisher) Publish(context.Context, string, interface{}) error { return nil }
