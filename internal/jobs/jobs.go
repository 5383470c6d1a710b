package jobs

import (
	"context"
	"fmt"
	"villa/config"
	"villa/infras/otel"
	bookingService "villa/internal/domains/booking/service"
	sessionService "villa/internal/domains/session/service"
	"villa/shared/constant"
	"villa/shared/timezone"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler runs the worker's periodic maintenance on cron specs from config.
type Scheduler struct {
	cron     *cron.Cron
	cfg      *config.Config
	sessions sessionService.Session
	bookings bookingService.Booking
	otel     otel.Otel
}

func New(cfg *config.Config, sessions sessionService.Session, bookings bookingService.Booking, otel otel.Otel) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(timezone.GetLocation())),
		cfg:      cfg,
		sessions: sessions,
		bookings: bookings,
		otel:     otel,
	}
}

// Register adds every job. It fails on a malformed spec.
func (s *Scheduler) Register() error {
	jobs := []struct {
		name string
		spec string
		run  func(ctx context.Context)
	}{
		{name: "purge-sessions", spec: s.cfg.Worker.SessionPurgeSpec, run: s.PurgeSessions},
		{name: "booking-reminders", spec: s.cfg.Worker.ReminderSpec, run: s.SendReminders},
	}

	for _, job := range jobs {
		if _, err := s.cron.AddFunc(job.spec, func() { job.run(context.Background()) }); err != nil {
			return fmt.Errorf("failed to schedule %s (%q): %w", job.name, job.spec, err)
		}

		log.Info().Str("job", job.name).Str("spec", job.spec).Msg("job scheduled")
	}

	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and returns a context done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) PurgeSessions(ctx context.Context) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".PurgeSessions")
	defer scope.End()

	purged, err := s.sessions.PurgeExpired(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to purge expired sessions")

		return
	}

	log.Info().Int("purged", purged).Msg("expired sessions purged")
}

// SendReminders publishes reminders for confirmed stays starting tomorrow.
func (s *Scheduler) SendReminders(ctx context.Context) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".SendReminders")
	defer scope.End()

	tomorrow := timezone.Now().AddDate(0, 0, 1)

	sent, err := s.bookings.SendReminders(ctx, tomorrow)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to send booking reminders")

		return
	}

	log.Info().Int("sent", sent).Str("day", timezone.Format(tomorrow, constant.DayFormat)).Msg("booking reminders published")
}
