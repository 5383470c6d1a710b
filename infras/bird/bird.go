package bird

//go:generate go run go.uber.org/mock/mockgen -source=./bird.go -destination=./mocks/bird_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"villa/config"
	"villa/infras/otel"
	"villa/shared/constant"

	"github.com/rs/zerolog/log"
)

const requestTimeout = 15 * time.Second

var (
	ErrNotConfigured = errors.New("bird is not configured")
	ErrRejected      = errors.New("bird rejected the message")
)

type Channel string

const (
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

func (c Channel) IsValid() bool {
	return c == ChannelSMS || c == ChannelWhatsApp
}

// Messenger sends plain text messages to a phone number through a Bird channel.
type Messenger interface {
	Send(ctx context.Context, channel Channel, to, text string) error
}

type messagePayload struct {
	Receiver receiver `json:"receiver"`
	Body     body     `json:"body"`
}

type receiver struct {
	Contacts []contact `json:"contacts"`
}

type contact struct {
	IdentifierValue string `json:"identifierValue"`
}

type body struct {
	Type string   `json:"type"`
	Text textBody `json:"text"`
}

type textBody struct {
	Text string `json:"text"`
}

type messengerImpl struct {
	httpClient *http.Client
	cfg        *config.Config
	otel       otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Messenger {
	return &messengerImpl{
		httpClient: &http.Client{Timeout: requestTimeout},
		cfg:        cfg,
		otel:       otel,
	}
}

func (m *messengerImpl) channelID(channel Channel) string {
	if channel == ChannelWhatsApp {
		return m.cfg.External.Bird.WhatsAppChannelID
	}

	return m.cfg.External.Bird.SMSChannelID
}

func (m *messengerImpl) Send(ctx context.Context, channel Channel, to, text string) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".bird.Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	birdCfg := m.cfg.External.Bird
	channelID := m.channelID(channel)

	if birdCfg.AccessKey == "" || birdCfg.WorkspaceID == "" || channelID == "" {
		return ErrNotConfigured
	}

	scope.SetAttribute("bird.channel", string(channel))

	payload, err := json.Marshal(messagePayload{
		Receiver: receiver{Contacts: []contact{{IdentifierValue: to}}},
		Body:     body{Type: "text", Text: textBody{Text: text}},
	})
	if err != nil {
		return fmt.Errorf("failed to encode bird message: %w", err)
	}

	url := fmt.Sprintf("%s/workspaces/%s/channels/%s/messages", strings.TrimSuffix(birdCfg.BaseURL, "/"), birdCfg.WorkspaceID, channelID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build bird request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderAuthorization, "AccessKey "+birdCfg.AccessKey)
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	res, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call bird: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		log.Error().Int("status", res.StatusCode).Str("body", string(detail)).Msg("bird returned an error")

		return fmt.Errorf("%w: status %d", ErrRejected, res.StatusCode)
	}

	log.Info().Str("channel", string(channel)).Str("to", to).Msg("message sent")

	return nil
}
