// Package mailer turns order lifecycle events into transactional email.
// Delivery is best-effort: a failed send is logged and the event is
// committed anyway, so email can never hold an order hostage.
package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/roahoki/biomechanics-website-sub001/internal/kafka"
	"github.com/roahoki/biomechanics-website-sub001/internal/orders"
	"github.com/roahoki/biomechanics-website-sub001/internal/redisx"
)

type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Service struct {
	Redis  *redis.Client
	Sender Sender
}

// HandleOrderEvent is the consumer handler for the order events topic.
func (s *Service) HandleOrderEvent(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}

	p, err := kafkax.UnwrapPayload[orders.OrderEventPayload](env.Payload)
	if err != nil {
		return err
	}
	subject, body, ok := Compose(env.EventType, p)
	if !ok {
		return nil
	}
	if p.BuyerContact == "" {
		return nil
	}

	// dedup by event id so a redelivered event does not mail twice
	if s.Redis != nil {
		dkey := fmt.Sprintf(redisx.KeyDedup, "mailer", env.EventID)
		if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
			return nil
		}
		_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	}

	if err := s.Sender.Send(ctx, p.BuyerContact, subject, body); err != nil {
		log.Printf("mail send order=%s event=%s: %v", p.OrderID, env.EventType, err)
	}
	return nil
}
