package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"villa/infras/kafka"
	"villa/infras/otel"
	"villa/shared/constant"
	"villa/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Kind string

const (
	KindBookingCreated       Kind = "booking.created"
	KindBookingStatusChanged Kind = "booking.status_changed"
	KindBookingReminder      Kind = "booking.reminder"
	KindContactCreated       Kind = "contact.created"
	KindChatMessage          Kind = "chat.message"
)

// Event is the envelope written to the events topic.
type Event struct {
	ID         string          `json:"id"`
	Kind       Kind            `json:"kind"`
	OccurredAt string          `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

type BookingPayload struct {
	BookingID      string `json:"booking_id"`
	UserID         string `json:"user_id,omitempty"`
	GuestName      string `json:"guest_name"`
	GuestEmail     string `json:"guest_email"`
	GuestPhone     string `json:"guest_phone,omitempty"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Guests         int    `json:"guests"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previous_status,omitempty"`
}

type ContactPayload struct {
	MessageID string `json:"message_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Message   string `json:"message"`
}

type ChatPayload struct {
	MessageID string `json:"message_id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Body      string `json:"body"`
}

// Decode unmarshals the payload of an event.
func Decode[T any](evt Event) (T, error) {
	var payload T

	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		return payload, fmt.Errorf("failed to decode %s payload: %w", evt.Kind, err)
	}

	return payload, nil
}

type Publisher interface {
	Publish(ctx context.Context, kind Kind, key string, payload any) error
}

type publisherImpl struct {
	client kafka.Client
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		otel:   otel,
	}
}

// Publish wraps payload in an Event and writes it keyed by key, so events of
// one aggregate keep their order on a partition.
func (p *publisherImpl) Publish(ctx context.Context, kind Kind, key string, payload any) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("event.kind", string(kind))

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", kind, err)
	}

	evt := Event{
		ID:         uuid.NewString(),
		Kind:       kind,
		OccurredAt: timezone.FormatISO(timezone.Now()),
		Payload:    raw,
	}

	if err = p.client.Publish(ctx, kafka.Message{Key: key, Value: evt}); err != nil {
		return fmt.Errorf("failed to publish %s: %w", kind, err)
	}

	log.Debug().Str("kind", string(kind)).Str("key", key).Msg("event published")

	return nil
}
