package realtime

import (
	"context"
	"encoding/json"

	"donmario/config"
	"donmario/infras/kafka"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Bridge consumes reservation lifecycle events from Kafka and rebroadcasts
// them to every connected chat client.
type Bridge struct {
	cfg   *config.Config
	kafka kafka.Client
	hub   *Hub
}

func NewBridge(cfg *config.Config, kafkaClient kafka.Client, hub *Hub) *Bridge {
	return &Bridge{
		cfg:   cfg,
		kafka: kafkaClient,
		hub:   hub,
	}
}

// Start launches one consumer per reservation topic. It returns immediately;
// the consumers stop when ctx is cancelled.
func (b *Bridge) Start(ctx context.Context) {
	if !b.cfg.Kafka.Enable {
		log.Info().Msg("Kafka disabled, reservation event bridge not started")

		return
	}

	go b.kafka.Consume(ctx, b.cfg.Kafka.ConsumerGroup, b.cfg.Kafka.Topics.ReservationCreated, func(msg kafkaGo.Message) {
		b.relay(EventReservationCreated, msg)
	})

	go b.kafka.Consume(ctx, b.cfg.Kafka.ConsumerGroup, b.cfg.Kafka.Topics.ReservationCancelled, func(msg kafkaGo.Message) {
		b.relay(EventReservationCancelled, msg)
	})

	log.Info().Msg("reservation event bridge started")
}

func (b *Bridge) relay(event string, msg kafkaGo.Message) {
	if !json.Valid(msg.Value) {
		log.Warn().Str("event", event).Str("key", string(msg.Key)).Msg("dropping malformed reservation event")

		return
	}

	b.hub.BroadcastAll(event, json.RawMessage(msg.Value))
}
