package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sync/atomic"
	"villa/config"
	"villa/infras/bird"
	"villa/infras/otel"
	"villa/infras/sendgrid"
	"villa/internal/domains/campaign/model/dto"
	userModel "villa/internal/domains/user/model"
	userRepository "villa/internal/domains/user/repository"
	"villa/shared"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/failure"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Campaign interface {
	SendEmail(ctx context.Context, req dto.EmailCampaignRequest) (dto.CampaignResponse, error)
	SendMessage(ctx context.Context, req dto.MessageCampaignRequest) (dto.CampaignResponse, error)
}

type serviceImpl struct {
	users     userRepository.User
	mailer    sendgrid.Mailer
	messenger bird.Messenger
	cfg       *config.Config
	otel      otel.Otel
}

func New(users userRepository.User, mailer sendgrid.Mailer, messenger bird.Messenger, cfg *config.Config, otel otel.Otel) Campaign {
	return &serviceImpl{
		users:     users,
		mailer:    mailer,
		messenger: messenger,
		cfg:       cfg,
		otel:      otel,
	}
}

func (s *serviceImpl) SendEmail(ctx context.Context, req dto.EmailCampaignRequest) (res dto.CampaignResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SendEmail")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !req.Audience.IsValid() {
		return res, failure.BadRequestFromString("unknown audience")
	}

	recipients, err := s.recipients(ctx, userModel.FilterByAudience(string(req.Audience)))
	if err != nil {
		return res, err
	}

	htmlBody := shared.TextToHTML(req.Body)

	res = s.fanOut(ctx, recipients, func(ctx context.Context, user userModel.User) error {
		return s.mailer.Send(ctx, sendgrid.Email{
			ToName:    displayName(user),
			ToAddress: user.Email,
			Subject:   req.Subject,
			Text:      req.Body,
			HTML:      htmlBody,
		})
	})

	log.Info().Str("audience", string(req.Audience)).Int("sent", res.Sent).Int("failed", res.Failed).Msg("email campaign finished")

	return res, nil
}

// SendMessage only reaches users that left a phone number.
func (s *serviceImpl) SendMessage(ctx context.Context, req dto.MessageCampaignRequest) (res dto.CampaignResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SendMessage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !req.Audience.IsValid() || !req.Channel.IsValid() {
		return res, failure.BadRequestFromString("unknown audience or channel")
	}

	filter := userModel.FilterByAudience(string(req.Audience))
	filter.Filters = append(filter.Filters,
		gDto.Filter{
			Field:    userModel.FieldPhone,
			Operator: gDto.FilterIsNotNull,
			Table:    userModel.TableName,
		},
		gDto.Filter{
			Field:    userModel.FieldPhone,
			Operator: gDto.FilterOperatorNotEq,
			Value:    "",
			Table:    userModel.TableName,
		},
	)

	recipients, err := s.recipients(ctx, filter)
	if err != nil {
		return res, err
	}

	res = s.fanOut(ctx, recipients, func(ctx context.Context, user userModel.User) error {
		return s.messenger.Send(ctx, req.Channel, *user.Phone, req.Body)
	})

	log.Info().Str("audience", string(req.Audience)).Str("channel", string(req.Channel)).Int("sent", res.Sent).Int("failed", res.Failed).Msg("message campaign finished")

	return res, nil
}

func (s *serviceImpl) recipients(ctx context.Context, filter gDto.FilterGroup) ([]userModel.User, error) {
	users, err := s.users.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to load campaign recipients")

		return nil, fmt.Errorf("failed to load campaign recipients: %w", err)
	}

	return users, nil
}

// fanOut delivers to every recipient with at most Worker.CampaignConcurrency
// sends in flight. A failed send is counted and logged, never returned.
func (s *serviceImpl) fanOut(ctx context.Context, recipients []userModel.User, send func(context.Context, userModel.User) error) dto.CampaignResponse {
	var sent, failed atomic.Int64

	limit := s.cfg.Worker.CampaignConcurrency
	if limit <= 0 {
		limit = 1
	}

	var group errgroup.Group
	group.SetLimit(limit)

	for _, user := range recipients {
		group.Go(func() error {
			if err := send(ctx, user); err != nil {
				failed.Add(1)
				log.Warn().Err(err).Str("userID", user.ID).Msg("campaign delivery failed")

				return nil
			}

			sent.Add(1)

			return nil
		})
	}

	_ = group.Wait()

	return dto.CampaignResponse{
		Recipients: len(recipients),
		Sent:       int(sent.Load()),
		Failed:     int(failed.Load()),
	}
}

func displayName(user userModel.User) string {
	if user.FullName != nil && *user.FullName != constant.Empty {
		return *user.FullName
	}

	return user.Username
}
