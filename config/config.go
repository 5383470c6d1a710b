package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		BaseURL  string `envconfig:"BASE_URL"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Session struct {
		CookieName string `envconfig:"COOKIE_NAME" default:"villa.sid"`
		TTLHours   int    `envconfig:"TTL_HOURS"   default:"168"`
		Secure     bool   `envconfig:"SECURE"`
		Domain     string `envconfig:"DOMAIN"`
	} `envconfig:"SESSION"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret    string `envconfig:"ACCESS_SECRET"`
		AccessExpireMin int    `envconfig:"ACCESS_EXPIRE_MIN" default:"1440"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			Read           struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP" default:"villa-worker"`
		Topic         string   `envconfig:"TOPIC"          default:"villa.events"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	Villa struct {
		Name       string `envconfig:"NAME"        default:"Villa"`
		Address    string `envconfig:"ADDRESS"`
		AdminEmail string `envconfig:"ADMIN_EMAIL"`
		AdminPhone string `envconfig:"ADMIN_PHONE"`
		MaxGuests  int    `envconfig:"MAX_GUESTS"  default:"8"`
	} `envconfig:"VILLA"`

	Worker struct {
		SessionPurgeSpec    string `envconfig:"SESSION_PURGE_SPEC"    default:"@hourly"`
		ReminderSpec        string `envconfig:"REMINDER_SPEC"         default:"0 9 * * *"`
		CampaignConcurrency int    `envconfig:"CAMPAIGN_CONCURRENCY"  default:"5"`
	} `envconfig:"WORKER"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		} `envconfig:"S3"`
		SendGrid struct {
			APIKey    string `envconfig:"API_KEY"`
			FromEmail string `envconfig:"FROM_EMAIL"`
			FromName  string `envconfig:"FROM_NAME"`
		} `envconfig:"SENDGRID"`
		Bird struct {
			BaseURL           string `envconfig:"BASE_URL"            default:"https://api.bird.com"`
			AccessKey         string `envconfig:"ACCESS_KEY"`
			WorkspaceID       string `envconfig:"WORKSPACE_ID"`
			SMSChannelID      string `envconfig:"SMS_CHANNEL_ID"`
			WhatsAppChannelID string `envconfig:"WHATSAPP_CHANNEL_ID"`
		} `envconfig:"BIRD"`
		GoogleMaps struct {
			APIKey string `envconfig:"API_KEY"`
		} `envconfig:"GOOGLE_MAPS"`
	} `envconfig:"EXTERNAL"`
}

var conf Config

var load = sync.OnceValue(func() error {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg("no .env file, reading the process environment only")
	}

	if err := envconfig.Process("", &conf); err != nil {
		return fmt.Errorf("process environment: %w", err)
	}

	return nil
})

// Init loads the configuration once. Later calls return the first result.
func Init() error {
	return load()
}

// Get returns the loaded configuration and exits when it cannot be loaded.
func Get() *Config {
	if err := Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	return &conf
}

// SessionTTLSeconds returns the session lifetime used for the cookie and the cache.
func (c *Config) SessionTTLSeconds() int {
	return int(c.SessionTTL().Seconds())
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLHours) * time.Hour
}
