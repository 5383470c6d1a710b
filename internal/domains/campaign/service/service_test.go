package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"villa/config"
	"villa/infras/bird"
	birdMocks "villa/infras/bird/mocks"
	"villa/infras/otel/mocks"
	"villa/infras/sendgrid"
	sendgridMocks "villa/infras/sendgrid/mocks"
	"villa/internal/domains/campaign/model/dto"
	"villa/internal/domains/campaign/service"
	userMocks "villa/internal/domains/user/mocks"
	userModel "villa/internal/domains/user/model"
	gDto "villa/shared/dto"
	"villa/shared/failure"
)

type fixture struct {
	svc       service.Campaign
	users     *userMocks.MockUser
	mailer    *sendgridMocks.MockMailer
	messenger *birdMocks.MockMessenger
}

func setup(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		users:     userMocks.NewMockUser(ctrl),
		mailer:    sendgridMocks.NewMockMailer(ctrl),
		messenger: birdMocks.NewMockMessenger(ctrl),
	}

	cfg := &config.Config{}
	cfg.Worker.CampaignConcurrency = 2

	f.svc = service.New(f.users, f.mailer, f.messenger, cfg, mocks.NewOtel())

	return f
}

func phone(v string) *string {
	return &v
}

func TestCampaignService_SendEmail(t *testing.T) {
	t.Run("counts sent and failed", func(t *testing.T) {
		f := setup(t)

		name := "Ana Silva"

		f.users.EXPECT().GetAll(gomock.Any(), gomock.Any(), userModel.FilterByAudience(userModel.AudienceMarketing)).Return([]userModel.User{
			{ID: "u1", Username: "ana", Email: "ana@example.com", FullName: &name},
			{ID: "u2", Username: "bo", Email: "bo@example.com"},
			{ID: "u3", Username: "cy", Email: "cy@example.com"},
		}, nil)

		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, email sendgrid.Email) error {
			assert.Equal(t, "Summer offer", email.Subject)
			assert.Equal(t, "line one<br>line two", email.HTML)

			if email.ToAddress == "bo@example.com" {
				return errors.New("bounced")
			}

			if email.ToAddress == "ana@example.com" {
				assert.Equal(t, name, email.ToName)
			}

			return nil
		}).Times(3)

		res, err := f.svc.SendEmail(context.Background(), dto.EmailCampaignRequest{
			Subject:  "Summer offer",
			Body:     "line one\nline two",
			Audience: userModel.AudienceMarketing,
		})

		assert.NoError(t, err)
		assert.Equal(t, dto.CampaignResponse{Recipients: 3, Sent: 2, Failed: 1}, res)
	})

	t.Run("unknown audience", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.SendEmail(context.Background(), dto.EmailCampaignRequest{Subject: "s", Body: "b", Audience: "everyone"})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("recipient lookup fails", func(t *testing.T) {
		f := setup(t)

		f.users.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		_, err := f.svc.SendEmail(context.Background(), dto.EmailCampaignRequest{Subject: "s", Body: "b", Audience: userModel.AudienceAll})

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestCampaignService_SendMessage(t *testing.T) {
	t.Run("only users with a non-empty phone", func(t *testing.T) {
		f := setup(t)

		f.users.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]userModel.User, error) {
				assert.Contains(t, filter.Filters, gDto.Filter{
					Field:    userModel.FieldPhone,
					Operator: gDto.FilterIsNotNull,
					Table:    userModel.TableName,
				})
				assert.Contains(t, filter.Filters, gDto.Filter{
					Field:    userModel.FieldPhone,
					Operator: gDto.FilterOperatorNotEq,
					Value:    "",
					Table:    userModel.TableName,
				})

				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "users.phone IS NOT NULL")
				assert.Contains(t, where, "users.phone != :phone")
				assert.Equal(t, "", args[userModel.FieldPhone])

				return []userModel.User{
					{ID: "u1", Phone: phone("+6281100001")},
					{ID: "u2", Phone: phone("+6281100002")},
				}, nil
			})

		f.messenger.EXPECT().Send(gomock.Any(), bird.ChannelWhatsApp, gomock.Any(), "Pool reopened").Return(nil).Times(2)

		res, err := f.svc.SendMessage(context.Background(), dto.MessageCampaignRequest{
			Body:     "Pool reopened",
			Channel:  bird.ChannelWhatsApp,
			Audience: userModel.AudienceGuests,
		})

		assert.NoError(t, err)
		assert.Equal(t, dto.CampaignResponse{Recipients: 2, Sent: 2}, res)
	})

	t.Run("unknown channel", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.SendMessage(context.Background(), dto.MessageCampaignRequest{
			Body:     "hi",
			Channel:  "pigeon",
			Audience: userModel.AudienceAll,
		})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
