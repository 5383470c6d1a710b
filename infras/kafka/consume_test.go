package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

// queueReader hands out queued messages, then blocks until ctx ends.
type queueReader struct {
	queue     []kafkaGo.Message
	committed []int64
}

func (r *queueReader) FetchMessage(ctx context.Context) (kafkaGo.Message, error) {
	if len(r.queue) == 0 {
		<-ctx.Done()

		return kafkaGo.Message{}, ctx.Err()
	}

	msg := r.queue[0]
	r.queue = r.queue[1:]

	return msg, nil
}

func (r *queueReader) CommitMessages(_ context.Context, msgs ...kafkaGo.Message) error {
	for _, msg := range msgs {
		r.committed = append(r.committed, msg.Offset)
	}

	return nil
}

func TestConsume(t *testing.T) {
	t.Run("failed message is retried before the next one is read", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		reader := &queueReader{queue: []kafkaGo.Message{{Offset: 1}, {Offset: 2}}}

		var handled []int64
		failures := 2

		err := consume(ctx, reader, func(_ context.Context, msg kafkaGo.Message) error {
			handled = append(handled, msg.Offset)

			if msg.Offset == 1 && failures > 0 {
				failures--

				return errors.New("smtp down")
			}

			if msg.Offset == 2 {
				cancel()
			}

			return nil
		}, time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, []int64{1, 1, 1, 2}, handled)
		assert.Equal(t, []int64{1, 2}, reader.committed)
	})

	t.Run("shutdown during retries leaves the offset uncommitted", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		reader := &queueReader{queue: []kafkaGo.Message{{Offset: 7}, {Offset: 8}}}

		var handled []int64

		err := consume(ctx, reader, func(_ context.Context, msg kafkaGo.Message) error {
			handled = append(handled, msg.Offset)
			cancel()

			return errors.New("smtp down")
		}, time.Hour)

		assert.NoError(t, err)
		assert.Equal(t, []int64{7}, handled)
		assert.Empty(t, reader.committed)
	})
}
