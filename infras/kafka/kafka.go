package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"villa/config"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	writeTimeout  = 10 * time.Second
	retryDelay    = time.Second
	maxRetryDelay = time.Minute
)

var ErrNoBrokers = errors.New("kafka brokers are not configured")

type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	jsonValue, err := json.Marshal(m.Value)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal message value to JSON")

		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	return kafkaGo.Message{
		Key:   []byte(m.Key),
		Value: jsonValue,
	}, nil
}

// Decode unmarshals the JSON value of a consumed message.
func Decode[T any](msg kafkaGo.Message) (T, error) {
	var value T

	if err := json.Unmarshal(msg.Value, &value); err != nil {
		return value, fmt.Errorf("failed to unmarshal Kafka message value from JSON: %w", err)
	}

	return value, nil
}

// Handler processes one consumed message. The offset is committed only when it
// returns nil. A failed message is retried before anything after it is read.
type Handler func(ctx context.Context, message kafkaGo.Message) error

type messageReader interface {
	FetchMessage(ctx context.Context) (kafkaGo.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkaGo.Message) error
}

type Client interface {
	Publish(ctx context.Context, messages ...Message) (err error)
	Consume(ctx context.Context, handler Handler) error
	Close() error
}

type kafkaClientImpl struct {
	config *config.Config
	dialer *kafkaGo.Dialer
	writer *kafkaGo.Writer
}

func New(config *config.Config) Client {
	var mechanism sasl.Mechanism

	if config.Kafka.SASL.Username != "" {
		mechanism = plain.Mechanism{
			Username: config.Kafka.SASL.Username,
			Password: config.Kafka.SASL.Password,
		}
	}

	dialer := &kafkaGo.Dialer{
		DualStack:     true,
		Timeout:       writeTimeout,
		SASLMechanism: mechanism,
	}

	client := &kafkaClientImpl{
		config: config,
		dialer: dialer,
	}

	if len(config.Kafka.Brokers) == 0 {
		log.Warn().Msg("No Kafka brokers configured, events will be dropped")

		return client
	}

	client.writer = &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(config.Kafka.Brokers...),
		Topic:                  config.Kafka.Topic,
		Balancer:               &kafkaGo.Hash{},
		Transport:              &kafkaGo.Transport{SASL: mechanism},
		RequiredAcks:           kafkaGo.RequireOne,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
	}

	log.Info().Strs("brokers", config.Kafka.Brokers).Str("topic", config.Kafka.Topic).Msg("Kafka client initialized")

	return client
}

func (k *kafkaClientImpl) Publish(ctx context.Context, messages ...Message) (err error) {
	if k.writer == nil {
		return ErrNoBrokers
	}

	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage()
		if err != nil {
			return err
		}

		msgs = append(msgs, msg)
	}

	if err = k.writer.WriteMessages(ctx, msgs...); err != nil {
		log.Error().Err(err).Str("topic", k.writer.Topic).Msg("Failed to send message to Kafka.")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Debug().Str("topic", k.writer.Topic).Int("count", len(msgs)).Msg("Sent messages successfully.")

	return nil
}

// Consume reads the configured topic as part of the consumer group until ctx is done.
func (k *kafkaClientImpl) Consume(ctx context.Context, handler Handler) error {
	if len(k.config.Kafka.Brokers) == 0 {
		return ErrNoBrokers
	}

	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     k.config.Kafka.Brokers,
		Topic:       k.config.Kafka.Topic,
		GroupID:     k.config.Kafka.ConsumerGroup,
		Dialer:      k.dialer,
		StartOffset: kafkaGo.FirstOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka reader.")
		}
	}()

	return consume(ctx, reader, handler, retryDelay)
}

func consume(ctx context.Context, reader messageReader, handler Handler, delay time.Duration) error {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Msg("Consumer context done.")

				return nil
			}

			log.Error().Err(err).Msg("Failed to read message from Kafka.")

			continue
		}

		log.Info().Str("topic", msg.Topic).Str("key", string(msg.Key)).Int64("offset", msg.Offset).Msg("Received message from Kafka.")

		if !handleWithRetry(ctx, handler, msg, delay) {
			log.Info().Msg("Consumer context done.")

			return nil
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error().Err(err).Msg("Failed to commit Kafka offset.")
		}
	}
}

// handleWithRetry runs handler until it succeeds, doubling the wait between
// attempts up to maxRetryDelay. It reports false when ctx ends first, leaving
// the message uncommitted for the next consumer.
func handleWithRetry(ctx context.Context, handler Handler, msg kafkaGo.Message, delay time.Duration) bool {
	for attempt := 1; ; attempt++ {
		err := handler(ctx, msg)
		if err == nil {
			return true
		}

		log.Error().Err(err).Str("key", string(msg.Key)).Int64("offset", msg.Offset).Int("attempt", attempt).
			Dur("retry_in", delay).Msg("Failed to handle Kafka message, retrying.")

		timer := time.NewTimer(delay)

		select {
		case <-ctx.Done():
			timer.Stop()

			return false
		case <-timer.C:
		}

		delay = min(delay*2, maxRetryDelay)
	}
}

func (k *kafkaClientImpl) Close() error {
	if k.writer == nil {
		return nil
	}

	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka writer: %w", err)
	}

	return nil
}
