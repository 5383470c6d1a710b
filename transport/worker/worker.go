package worker

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"
	"villa/config"
	"villa/infras/kafka"
	"villa/internal/jobs"
	notificationService "villa/internal/domains/notification/service"

	"github.com/rs/zerolog/log"
)

type Worker struct {
	Config       *config.Config
	Kafka        kafka.Client
	Notification notificationService.Notification
	Scheduler    *jobs.Scheduler
}

func New(cfg *config.Config, client kafka.Client, notification notificationService.Notification, scheduler *jobs.Scheduler) *Worker {
	return &Worker{
		Config:       cfg,
		Kafka:        client,
		Notification: notification,
		Scheduler:    scheduler,
	}
}

// Serve consumes events and runs the scheduled jobs until SIGTERM.
func (w *Worker) Serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Scheduler.Register(); err != nil {
		log.Fatal().Err(err).Msg("Failed to register jobs")
	}

	w.Scheduler.Start()

	log.Info().Str("topic", w.Config.Kafka.Topic).Msg("Starting up worker.")

	err := w.Kafka.Consume(ctx, w.Notification.Handle)
	if errors.Is(err, kafka.ErrNoBrokers) {
		log.Warn().Msg("No Kafka brokers configured, running scheduled jobs only.")

		<-ctx.Done()
	} else if err != nil {
		log.Error().Err(err).Msg("Kafka consumer stopped")
	}

	w.shutdown()
}

func (w *Worker) shutdown() {
	log.Info().Msg("Received SIGTERM. Waiting for running jobs.")

	timeout := time.Duration(w.Config.Server.Shutdown.CleanupPeriodSeconds) * time.Second

	select {
	case <-w.Scheduler.Stop().Done():
	case <-time.After(timeout):
		log.Warn().Dur("timeout", timeout).Msg("Jobs still running after cleanup period.")
	}

	if err := w.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close Kafka client")
	}

	log.Info().Msg("Worker stopped.")
}
