package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"learnpath-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventHandler processes one decoded event. A returned error naks the message.
type EventHandler func(ctx context.Context, event events.Event) error

// ErrorFunc receives failures that cannot be returned to a caller.
type ErrorFunc func(subject string, err error)

// Subscriber consumes learning events from JetStream.
type Subscriber struct {
	nc      *nats.Conn
	js      jetstream.JetStream
	onError ErrorFunc
	stops   []jetstream.ConsumeContext
}

func NewSubscriber(url string, onError ErrorFunc) (*Subscriber, error) {
	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if onError == nil {
		onError = func(string, error) {}
	}
	return &Subscriber{nc: nc, js: js, onError: onError}, nil
}

// DecodeEvent reads a message written by Publisher.
func DecodeEvent(data []byte) (events.Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("decode event: missing type")
	}
	return events.BaseEvent{Type: env.Type, Data: env.Data, OccurredAt: env.OccurredAt}, nil
}

// Subscribe attaches a durable consumer on the learning events stream.
// subject may use wildcards, e.g. "learning.>".
func (s *Subscriber) Subscribe(ctx context.Context, subject, durableName string, handler EventHandler) error {
	consumer, err := s.js.CreateOrUpdateConsumer(ctx, StreamName, jetstream.ConsumerConfig{
		Durable:       durableName,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    5,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		event, err := DecodeEvent(msg.Data())
		if err != nil {
			// Poison message; redelivery would not help.
			s.onError(msg.Subject(), err)
			_ = msg.Term()
			return
		}

		if err := handler(ctx, event); err != nil {
			s.onError(msg.Subject(), err)
			_ = msg.Nak()
			return
		}

		_ = msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	s.stops = append(s.stops, cc)
	return nil
}

// Close stops consumers and closes the connection.
func (s *Subscriber) Close() {
	for _, cc := range s.stops {
		cc.Stop()
	}
	if s.nc != nil {
		s.nc.Close()
	}
}
