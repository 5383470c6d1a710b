package sendgrid

//go:generate go run go.uber.org/mock/mockgen -source=./sendgrid.go -destination=./mocks/sendgrid_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"villa/config"
	"villa/infras/otel"
	"villa/shared/constant"

	"github.com/rs/zerolog/log"
	sendgridGo "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	ErrNotConfigured = errors.New("sendgrid is not configured")
	ErrRejected      = errors.New("sendgrid rejected the message")
)

type Email struct {
	ToName    string
	ToAddress string
	Subject   string
	Text      string
	HTML      string
}

type Mailer interface {
	Send(ctx context.Context, email Email) error
}

type mailerImpl struct {
	client *sendgridGo.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Mailer {
	var client *sendgridGo.Client

	if cfg.External.SendGrid.APIKey != "" {
		client = sendgridGo.NewSendClient(cfg.External.SendGrid.APIKey)
	} else {
		log.Warn().Msg("No SendGrid API key configured, emails will not be sent")
	}

	return &mailerImpl{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (m *mailerImpl) Send(ctx context.Context, email Email) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".sendgrid.Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if m.client == nil {
		return ErrNotConfigured
	}

	from := mail.NewEmail(m.cfg.External.SendGrid.FromName, m.cfg.External.SendGrid.FromEmail)
	to := mail.NewEmail(email.ToName, email.ToAddress)

	message := mail.NewSingleEmail(from, email.Subject, to, email.Text, email.HTML)

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= http.StatusBadRequest {
		log.Error().Int("status", response.StatusCode).Str("body", response.Body).Msg("sendgrid returned an error")

		return fmt.Errorf("%w: status %d", ErrRejected, response.StatusCode)
	}

	log.Info().Str("to", email.ToAddress).Str("subject", email.Subject).Msg("email sent")

	return nil
}
