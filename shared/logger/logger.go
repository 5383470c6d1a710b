package logger

import (
	"io"
	"os"
	"time"
	"villa/config"
	"villa/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init points the global zerolog logger at stdout for one villa process
// (app, worker, migrate or serverless). Development gets the console writer,
// every other environment writes JSON lines tagged with the process name.
func Init(cfg *config.Config, process string) {
	InitTo(os.Stdout, cfg, process)
}

func InitTo(out io.Writer, cfg *config.Config, process string) {
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Server.Env == constant.Empty || cfg.Server.Env == constant.ServerEnvDevelopment {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(out).With().
		Timestamp().
		Str("service", cfg.App.Name).
		Str("process", process).
		Logger()

	zerolog.SetGlobalLevel(Level(cfg.Server.LogLevel))

	log.Debug().Str("level", zerolog.GlobalLevel().String()).Msg("logger initialized")
}

// Level parses a LOG_LEVEL value. Anything unknown means info.
func Level(value string) zerolog.Level {
	level, err := zerolog.ParseLevel(value)
	if err != nil || value == constant.Empty {
		return zerolog.InfoLevel
	}

	return level
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
