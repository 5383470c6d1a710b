package contact

import (
	"net/http"
	"villa/infras/otel"
	"villa/internal/domains/contact/model"
	"villa/internal/domains/contact/model/dto"
	"villa/internal/domains/contact/service"
	"villa/shared"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/validator"
	"villa/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Contact
	otel    otel.Otel
}

func New(service service.Contact, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/contact", handler.CreateMessage)

	router.Get("/admin/messages", handler.GetMessages)
	router.Patch("/admin/messages/{id}/read", handler.MarkRead)
	router.Delete("/admin/messages/{id}", handler.DeleteMessage)
}

// CreateMessage stores a message sent from the contact form.
// @Summary Send a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body dto.CreateContactRequest true "Message"
// @Success 201 {object} response.Data[dto.ContactMessageResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/contact [post]
func (handler *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMessage")
	defer scope.End()

	req := dto.CreateContactRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create contact message")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetMessages lists contact messages.
// @Summary Get contact messages
// @Tags Contact
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param read query boolean false "Filter by read flag"
// @Success 200 {object} response.Data[dto.GetContactMessagesResponse]
// @Failure 500 {object} response.Error
// @Router /api/admin/messages [get]
// @Security BearerAuth
func (handler *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMessages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if read := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldRead)); read != nil {
		filterGroup.Filters = append(filterGroup.Filters, model.FilterByRead(*read))
	}

	messages, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contact messages")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, messages)
}

// MarkRead flags a message as read. Repeating it is harmless.
// @Summary Mark a contact message read
// @Tags Contact
// @Produce json
// @Param id path string true "Message ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/messages/{id}/read [patch]
// @Security BearerAuth
func (handler *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkRead")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.MarkRead(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark contact message read")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Message marked as read")
}

// DeleteMessage deletes a contact message.
// @Summary Delete a contact message
// @Tags Contact
// @Produce json
// @Param id path string true "Message ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/messages/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMessage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete contact message")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Contact message deleted by user " + user)

	response.WithMessage(w, http.StatusOK, "Message deleted successfully")
}
