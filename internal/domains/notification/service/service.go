package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"villa/config"
	"villa/infras/bird"
	"villa/infras/kafka"
	"villa/infras/otel"
	"villa/infras/sendgrid"
	"villa/shared"
	"villa/shared/constant"
	"villa/shared/event"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

var errNoRecipient = errors.New("no recipient configured")

// Notification turns domain events into emails and WhatsApp/SMS messages.
type Notification interface {
	Handle(ctx context.Context, message kafkaGo.Message) error
	Dispatch(ctx context.Context, evt event.Event)
}

type serviceImpl struct {
	mailer    sendgrid.Mailer
	messenger bird.Messenger
	cfg       *config.Config
	otel      otel.Otel
}

func New(mailer sendgrid.Mailer, messenger bird.Messenger, cfg *config.Config, otel otel.Otel) Notification {
	return &serviceImpl{
		mailer:    mailer,
		messenger: messenger,
		cfg:       cfg,
		otel:      otel,
	}
}

// Handle is the kafka.Handler of the worker. Undecodable messages are logged
// and acknowledged so they do not block the partition.
func (s *serviceImpl) Handle(ctx context.Context, message kafkaGo.Message) error {
	evt, err := kafka.Decode[event.Event](message)
	if err != nil {
		log.Error().Err(err).Str("key", string(message.Key)).Msg("dropping undecodable event")

		return nil
	}

	s.Dispatch(ctx, evt)

	return nil
}

// Dispatch sends every notification evt calls for. Delivery failures are
// logged and swallowed.
func (s *serviceImpl) Dispatch(ctx context.Context, evt event.Event) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".notification.Dispatch")
	defer scope.End()

	scope.SetAttributes(map[string]any{
		"event.id":   evt.ID,
		"event.kind": string(evt.Kind),
	})

	var err error

	switch evt.Kind {
	case event.KindBookingCreated:
		err = s.bookingCreated(ctx, evt)
	case event.KindBookingStatusChanged:
		err = s.bookingStatusChanged(ctx, evt)
	case event.KindBookingReminder:
		err = s.bookingReminder(ctx, evt)
	case event.KindContactCreated:
		err = s.contactCreated(ctx, evt)
	case event.KindChatMessage:
		err = s.chatMessage(ctx, evt)
	default:
		log.Warn().Str("kind", string(evt.Kind)).Msg("no notification for event kind")

		return
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("eventID", evt.ID).Str("kind", string(evt.Kind)).Msg("failed to decode event payload")
	}
}

func (s *serviceImpl) bookingCreated(ctx context.Context, evt event.Event) error {
	payload, err := event.Decode[event.BookingPayload](evt)
	if err != nil {
		return err
	}

	villa := s.cfg.Villa.Name

	subject, text := bookingReceivedToGuest(villa, payload)
	s.email(ctx, evt, payload.GuestName, payload.GuestEmail, subject, text)

	subject, text = bookingReceivedToAdmin(payload)
	s.email(ctx, evt, villa, s.cfg.Villa.AdminEmail, subject, text)

	s.message(ctx, evt, bird.ChannelWhatsApp, s.cfg.Villa.AdminPhone, bookingAdminPing(payload))

	return nil
}

func (s *serviceImpl) bookingStatusChanged(ctx context.Context, evt event.Event) error {
	payload, err := event.Decode[event.BookingPayload](evt)
	if err != nil {
		return err
	}

	subject, text := bookingStatusToGuest(s.cfg.Villa.Name, payload)
	s.email(ctx, evt, payload.GuestName, payload.GuestEmail, subject, text)

	return nil
}

// bookingReminder prefers WhatsApp and falls back to SMS on the same number.
func (s *serviceImpl) bookingReminder(ctx context.Context, evt event.Event) error {
	payload, err := event.Decode[event.BookingPayload](evt)
	if err != nil {
		return err
	}

	text := bookingReminder(s.cfg.Villa.Name, payload)

	if payload.GuestPhone == constant.Empty {
		log.Info().Str("bookingID", payload.BookingID).Msg("guest has no phone, skipping reminder")

		return nil
	}

	if s.message(ctx, evt, bird.ChannelWhatsApp, payload.GuestPhone, text) {
		return nil
	}

	s.message(ctx, evt, bird.ChannelSMS, payload.GuestPhone, text)

	return nil
}

func (s *serviceImpl) contactCreated(ctx context.Context, evt event.Event) error {
	payload, err := event.Decode[event.ContactPayload](evt)
	if err != nil {
		return err
	}

	subject, text := contactToAdmin(payload)
	s.email(ctx, evt, s.cfg.Villa.Name, s.cfg.Villa.AdminEmail, subject, text)

	return nil
}

func (s *serviceImpl) chatMessage(ctx context.Context, evt event.Event) error {
	payload, err := event.Decode[event.ChatPayload](evt)
	if err != nil {
		return err
	}

	s.message(ctx, evt, bird.ChannelWhatsApp, s.cfg.Villa.AdminPhone, chatAdminPing(payload))

	return nil
}

func (s *serviceImpl) email(ctx context.Context, evt event.Event, name, address, subject, text string) bool {
	err := errNoRecipient

	if address != constant.Empty {
		err = s.mailer.Send(ctx, sendgrid.Email{
			ToName:    name,
			ToAddress: address,
			Subject:   subject,
			Text:      text,
			HTML:      shared.TextToHTML(text),
		})
	}

	if err != nil {
		log.Warn().Err(err).Str("eventID", evt.ID).Str("kind", string(evt.Kind)).Msg("email notification not sent")

		return false
	}

	return true
}

func (s *serviceImpl) message(ctx context.Context, evt event.Event, channel bird.Channel, to, text string) bool {
	err := errNoRecipient

	if to != constant.Empty {
		err = s.messenger.Send(ctx, channel, to, text)
	}

	if err != nil {
		log.Warn().Err(err).Str("eventID", evt.ID).Str("channel", string(channel)).Msg("message notification not sent")

		return false
	}

	return true
}
