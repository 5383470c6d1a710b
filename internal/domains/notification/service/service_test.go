package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"villa/config"
	"villa/infras/bird"
	birdMocks "villa/infras/bird/mocks"
	"villa/infras/otel/mocks"
	"villa/infras/sendgrid"
	sendgridMocks "villa/infras/sendgrid/mocks"
	"villa/internal/domains/notification/service"
	"villa/shared/event"
)

type fixture struct {
	svc       service.Notification
	mailer    *sendgridMocks.MockMailer
	messenger *birdMocks.MockMessenger
}

func setup(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		mailer:    sendgridMocks.NewMockMailer(ctrl),
		messenger: birdMocks.NewMockMessenger(ctrl),
	}

	cfg := &config.Config{}
	cfg.Villa.Name = "Villa Serenity"
	cfg.Villa.AdminEmail = "owner@example.com"
	cfg.Villa.AdminPhone = "+628110000"

	f.svc = service.New(f.mailer, f.messenger, cfg, mocks.NewOtel())

	return f
}

func newEvent(t *testing.T, kind event.Kind, payload any) event.Event {
	raw, err := json.Marshal(payload)
	assert.NoError(t, err)

	return event.Event{ID: "evt-1", Kind: kind, Payload: raw}
}

var booking = event.BookingPayload{
	BookingID:  "b1",
	GuestName:  "Ann",
	GuestEmail: "ann@example.com",
	GuestPhone: "+628120000",
	StartDate:  "2026-11-01T00:00:00.000Z",
	EndDate:    "2026-11-05T00:00:00.000Z",
	Guests:     4,
	Status:     "pending",
}

func TestNotification_BookingCreated(t *testing.T) {
	f := setup(t)

	var recipients []string

	f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, email sendgrid.Email) error {
		recipients = append(recipients, email.ToAddress)

		return nil
	}).Times(2)
	f.messenger.EXPECT().Send(gomock.Any(), bird.ChannelWhatsApp, "+628110000", gomock.Any()).Return(nil)

	f.svc.Dispatch(context.Background(), newEvent(t, event.KindBookingCreated, booking))

	assert.ElementsMatch(t, []string{"ann@example.com", "owner@example.com"}, recipients)
}

func TestNotification_FailuresAreSwallowed(t *testing.T) {
	f := setup(t)

	f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(sendgrid.ErrNotConfigured).Times(2)
	f.messenger.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(bird.ErrNotConfigured)

	assert.NotPanics(t, func() {
		f.svc.Dispatch(context.Background(), newEvent(t, event.KindBookingCreated, booking))
	})
}

func TestNotification_StatusChanged(t *testing.T) {
	f := setup(t)

	changed := booking
	changed.Status = "confirmed"
	changed.PreviousStatus = "pending"

	f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, email sendgrid.Email) error {
		assert.Equal(t, "ann@example.com", email.ToAddress)
		assert.Contains(t, email.Subject, "confirmed")

		return nil
	})

	f.svc.Dispatch(context.Background(), newEvent(t, event.KindBookingStatusChanged, changed))
}

func TestNotification_Reminder(t *testing.T) {
	t.Run("falls back to sms", func(t *testing.T) {
		f := setup(t)

		gomock.InOrder(
			f.messenger.EXPECT().Send(gomock.Any(), bird.ChannelWhatsApp, "+628120000", gomock.Any()).Return(errors.New("not on whatsapp")),
			f.messenger.EXPECT().Send(gomock.Any(), bird.ChannelSMS, "+628120000", gomock.Any()).Return(nil),
		)

		f.svc.Dispatch(context.Background(), newEvent(t, event.KindBookingReminder, booking))
	})

	t.Run("no phone", func(t *testing.T) {
		f := setup(t)

		noPhone := booking
		noPhone.GuestPhone = ""

		f.svc.Dispatch(context.Background(), newEvent(t, event.KindBookingReminder, noPhone))
	})
}

func TestNotification_ContactAndChat(t *testing.T) {
	f := setup(t)

	f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, email sendgrid.Email) error {
		assert.Equal(t, "owner@example.com", email.ToAddress)
		assert.Equal(t, "New contact message: Parking", email.Subject)

		return nil
	})
	f.messenger.EXPECT().Send(gomock.Any(), bird.ChannelWhatsApp, "+628110000", "New chat message from ann: is the pool heated?").Return(nil)

	f.svc.Dispatch(context.Background(), newEvent(t, event.KindContactCreated, event.ContactPayload{
		MessageID: "m1", Name: "Ann", Email: "ann@example.com", Subject: "Parking", Message: "Is there parking?",
	}))
	f.svc.Dispatch(context.Background(), newEvent(t, event.KindChatMessage, event.ChatPayload{
		MessageID: "c1", UserID: "u1", Username: "ann", Body: "is the pool heated?",
	}))
}

func TestNotification_Handle(t *testing.T) {
	t.Run("undecodable message is acknowledged", func(t *testing.T) {
		f := setup(t)

		err := f.svc.Handle(context.Background(), kafka.Message{Key: []byte("k"), Value: []byte("not json")})

		assert.NoError(t, err)
	})

	t.Run("decodes and dispatches", func(t *testing.T) {
		f := setup(t)

		raw, err := json.Marshal(newEvent(t, event.KindChatMessage, event.ChatPayload{Username: "ann", Body: "hi"}))
		assert.NoError(t, err)

		f.messenger.EXPECT().Send(gomock.Any(), bird.ChannelWhatsApp, gomock.Any(), gomock.Any()).Return(nil)

		err = f.svc.Handle(context.Background(), kafka.Message{Value: raw})

		assert.NoError(t, err)
	})
}
