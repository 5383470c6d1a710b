package event_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"villa/infras/kafka"
	kafkaMocks "villa/infras/kafka/mocks"
	"villa/infras/otel/mocks"
	"villa/shared/event"
)

func TestPublisher_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := kafkaMocks.NewMockClient(ctrl)
	publisher := event.NewPublisher(mockClient, mocks.NewOtel())

	payload := event.ContactPayload{MessageID: "msg-1", Name: "Ann", Email: "ann@example.com", Message: "hello"}

	t.Run("wraps payload in an envelope", func(t *testing.T) {
		mockClient.EXPECT().
			Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, messages ...kafka.Message) error {
				assert.Len(t, messages, 1)
				assert.Equal(t, "msg-1", messages[0].Key)

				evt, ok := messages[0].Value.(event.Event)
				assert.True(t, ok)
				assert.Equal(t, event.KindContactCreated, evt.Kind)
				assert.NotEmpty(t, evt.ID)
				assert.NotEmpty(t, evt.OccurredAt)

				decoded, err := event.Decode[event.ContactPayload](evt)
				assert.NoError(t, err)
				assert.Equal(t, payload, decoded)

				return nil
			})

		err := publisher.Publish(context.Background(), event.KindContactCreated, "msg-1", payload)
		assert.NoError(t, err)
	})

	t.Run("client error is returned", func(t *testing.T) {
		mockClient.EXPECT().
			Publish(gomock.Any(), gomock.Any()).
			Return(errors.New("broker down"))

		err := publisher.Publish(context.Background(), event.KindContactCreated, "msg-1", payload)
		assert.Error(t, err)
	})
}

func TestDecode_InvalidPayload(t *testing.T) {
	evt := event.Event{Kind: event.KindChatMessage, Payload: json.RawMessage(`"not an object"`)}

	_, err := event.Decode[event.ChatPayload](evt)
	assert.Error(t, err)
}
