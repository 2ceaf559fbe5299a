package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/go-faster/errors"
	"github.com/rs/zerolog"
)

type KafkaPublisher struct {
	sp     sarama.SyncProducer
	topic  string
	source string
	log    zerolog.Logger
}

func NewKafkaPublisher(sp sarama.SyncProducer, topic string, log zerolog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		sp:     sp,
		topic:  topic,
		source: "hrpro-api",
		log:    log.With().Str("component", "KafkaPublisher").Logger(),
	}
}

// DialKafka opens an idempotent sync producer against the given brokers.
func DialKafka(brokers []string, topic string, log zerolog.Logger) (*KafkaPublisher, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_3_2_0
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Net.MaxOpenRequests = 1
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Retry.Backoff = 200 * time.Millisecond

	sp, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "kafka sync producer")
	}
	return NewKafkaPublisher(sp, topic, log), nil
}

func (p *KafkaPublisher) Publish(_ context.Context, evt Event) error {
	if p == nil || p.sp == nil {
		return errors.New("sync producer is not initialized")
	}
	body, err := json.Marshal(evt)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(evt.EntityType + ":" + evt.EntityID),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(evt.Type)},
			{Key: []byte("event-id"), Value: []byte(evt.ID.String())},
			{Key: []byte("source"), Value: []byte(p.source)},
			{Key: []byte("content-type"), Value: []byte("application/json")},
		},
	}

	part, off, err := p.sp.SendMessage(msg)
	if err != nil {
		p.log.Error().Err(err).Str("topic", p.topic).Str("type", evt.Type).Msg("failed to send kafka message")
		return errors.Wrap(err, "send kafka message")
	}
	p.log.Debug().
		Str("topic", p.topic).
		Str("type", evt.Type).
		Int32("partition", part).
		Int64("offset", off).
		Msg("kafka message sent")
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p == nil || p.sp == nil {
		return nil
	}
	return p.sp.Close()
}
