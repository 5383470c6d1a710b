package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"villa/config"
	"villa/shared/constant"
	"villa/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	original := log.Logger
	level := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{in: "debug", want: zerolog.DebugLevel},
		{in: "warn", want: zerolog.WarnLevel},
		{in: "error", want: zerolog.ErrorLevel},
		{in: "", want: zerolog.InfoLevel},
		{in: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.Level(tt.in))
		})
	}
}

func TestInitTo_ProductionWritesJSON(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvProduction
	cfg.Server.LogLevel = "info"
	cfg.App.Name = "villa"

	var buf bytes.Buffer
	logger.InitTo(&buf, cfg, "worker")

	log.Info().Str("bookingID", "b-1").Msg("reminder sent")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "villa", line["service"])
	assert.Equal(t, "worker", line["process"])
	assert.Equal(t, "b-1", line["bookingID"])
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestInitTo_DevelopmentUsesConsole(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvDevelopment
	cfg.Server.LogLevel = "debug"

	var buf bytes.Buffer
	logger.InitTo(&buf, cfg, "app")

	log.Info().Msg("listening")

	assert.Contains(t, buf.String(), "listening")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	logger.ErrorWithStack(errors.New("insert booking failed"))

	assert.Contains(t, buf.String(), "insert booking failed")
}
