package monitor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// NatsPublisher pushes alert events to the configured NATS subject.
type NatsPublisher struct {
	conn    *nats.Conn
	subject string
}

func NewNatsPublisher(conn *nats.Conn, subject string) *NatsPublisher {
	return &NatsPublisher{
		conn:    conn,
		subject: subject,
	}
}

func (p *NatsPublisher) PublishAlert(_ context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal alert event: %w", err)
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("publish to %s: %w", p.subject, err)
	}

	return nil
}
