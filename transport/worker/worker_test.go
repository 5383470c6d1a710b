package worker_test

import (
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"villa/config"
	kafkaMocks "villa/infras/kafka/mocks"
	"villa/infras/otel/mocks"
	notificationMocks "villa/internal/domains/notification/service/mocks"
	"villa/internal/jobs"
	"villa/transport/worker"
)

func TestServeStopsWhenConsumerReturns(t *testing.T) {
	tests := []struct {
		name       string
		consumeErr error
	}{
		{name: "consumer done"},
		{name: "consumer failed", consumeErr: errors.New("broker gone")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			cfg := &config.Config{}
			cfg.Worker.SessionPurgeSpec = "@hourly"
			cfg.Worker.ReminderSpec = "0 9 * * *"
			cfg.Server.Shutdown.CleanupPeriodSeconds = 1

			client := kafkaMocks.NewMockClient(ctrl)
			notification := notificationMocks.NewMockNotification(ctrl)

			client.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(tt.consumeErr)
			client.EXPECT().Close().Return(nil)

			scheduler := jobs.New(cfg, nil, nil, mocks.NewOtel())

			worker.New(cfg, client, notification, scheduler).Serve()
		})
	}
}
