package monitor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Consumer drains alert events from the bus and persists them.
type Consumer struct {
	conn    *nats.Conn
	service *Service
	subject string

	sub *nats.Subscription
}

func NewConsumer(conn *nats.Conn, service *Service, subject string) *Consumer {
	return &Consumer{
		conn:    conn,
		service: service,
		subject: subject,
	}
}

func (c *Consumer) handler() nats.MsgHandler {
	return func(msg *nats.Msg) {
		var event Event
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			log.Warn().Err(err).Msg("malformed alert event")

			return
		}

		if err := c.service.StoreAlert(event); err != nil {
			log.Error().Err(err).Str("address", event.Address).Msg("store alert")
		}
	}
}

func (c *Consumer) Start(ctx context.Context) error {
	sub, err := c.conn.Subscribe(c.subject, c.handler())
	if err != nil {
		return fmt.Errorf("consume for %s: %w", c.subject, err)
	}
	c.sub = sub

	log.Info().Msg("alert consumer is started")

	<-ctx.Done()

	return c.stop()
}

func (c *Consumer) stop() error {
	if c.sub == nil {
		return nil
	}

	if err := c.sub.Unsubscribe(); err != nil {
		return fmt.Errorf("unsubscribe from %s: %w", c.subject, err)
	}

	log.Info().Msg("alert consumer is stopped")

	return nil
}
