package campaign

import (
	"net/http"
	"villa/infras/otel"
	"villa/internal/domains/campaign/model/dto"
	"villa/internal/domains/campaign/service"
	"villa/shared/constant"
	"villa/shared/validator"
	"villa/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Campaign
	otel    otel.Otel
}

func New(service service.Campaign, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/admin/campaigns/email", handler.SendEmail)
	router.Post("/admin/campaigns/sms", handler.SendMessage)
}

// SendEmail mails every user in the audience. Individual failures are counted, not fatal.
// @Summary Send an email campaign
// @Tags Campaign
// @Accept json
// @Produce json
// @Param request body dto.EmailCampaignRequest true "Campaign"
// @Success 200 {object} response.Data[dto.CampaignResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/campaigns/email [post]
// @Security BearerAuth
func (handler *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SendEmail")
	defer scope.End()

	req := dto.EmailCampaignRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SendEmail(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to send email campaign")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SendMessage texts every user in the audience over sms or whatsapp.
// @Summary Send an sms campaign
// @Tags Campaign
// @Accept json
// @Produce json
// @Param request body dto.MessageCampaignRequest true "Campaign"
// @Success 200 {object} response.Data[dto.CampaignResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/campaigns/sms [post]
// @Security BearerAuth
func (handler *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SendMessage")
	defer scope.End()

	req := dto.MessageCampaignRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SendMessage(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to send message campaign")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
