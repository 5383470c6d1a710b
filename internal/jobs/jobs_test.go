package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"villa/config"
	"villa/infras/otel/mocks"
	bookingMocks "villa/internal/domains/booking/service/mocks"
	sessionMocks "villa/internal/domains/session/service/mocks"
	"villa/internal/jobs"
	"villa/shared/timezone"
)

func newScheduler(t *testing.T, cfg *config.Config) (*jobs.Scheduler, *sessionMocks.MockSession, *bookingMocks.MockBooking) {
	ctrl := gomock.NewController(t)

	sessions := sessionMocks.NewMockSession(ctrl)
	bookings := bookingMocks.NewMockBooking(ctrl)

	return jobs.New(cfg, sessions, bookings, mocks.NewOtel()), sessions, bookings
}

func TestScheduler_Register(t *testing.T) {
	t.Run("valid specs", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Worker.SessionPurgeSpec = "@hourly"
		cfg.Worker.ReminderSpec = "0 9 * * *"

		scheduler, _, _ := newScheduler(t, cfg)

		assert.NoError(t, scheduler.Register())
	})

	t.Run("malformed spec", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Worker.SessionPurgeSpec = "every now and then"
		cfg.Worker.ReminderSpec = "0 9 * * *"

		scheduler, _, _ := newScheduler(t, cfg)

		assert.Error(t, scheduler.Register())
	})
}

func TestScheduler_PurgeSessions(t *testing.T) {
	scheduler, sessions, _ := newScheduler(t, &config.Config{})

	sessions.EXPECT().PurgeExpired(gomock.Any()).Return(3, nil)
	scheduler.PurgeSessions(context.Background())

	sessions.EXPECT().PurgeExpired(gomock.Any()).Return(0, errors.New("db down"))
	scheduler.PurgeSessions(context.Background())
}

func TestScheduler_SendReminders(t *testing.T) {
	scheduler, _, bookings := newScheduler(t, &config.Config{})

	bookings.EXPECT().SendReminders(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, day time.Time) (int, error) {
		want := timezone.Now().AddDate(0, 0, 1)
		assert.Equal(t, timezone.Format(want, "2006-01-02"), timezone.Format(day, "2006-01-02"))

		return 2, nil
	})

	scheduler.SendReminders(context.Background())
}
