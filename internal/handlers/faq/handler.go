package faq

import (
	"net/http"
	"villa/infras/otel"
	"villa/internal/domains/faq/model"
	"villa/internal/domains/faq/model/dto"
	"villa/internal/domains/faq/service"
	"villa/shared"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/validator"
	"villa/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Faq
	otel    otel.Otel
}

func New(service service.Faq, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/faqs", handler.GetPublishedFaqs)
	router.Post("/faqs/{id}/vote", handler.Vote)

	router.Get("/admin/faqs", handler.GetFaqs)
	router.Post("/admin/faqs", handler.CreateFaq)
	router.Get("/admin/faqs/{id}", handler.GetFaqByID)
	router.Patch("/admin/faqs/{id}", handler.UpdateFaq)
	router.Delete("/admin/faqs/{id}", handler.DeleteFaq)
}

// GetPublishedFaqs lists published questions.
// @Summary Get FAQs
// @Tags FAQ
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param category query string false "Filter by category"
// @Success 200 {object} response.Data[dto.GetFaqsResponse]
// @Failure 500 {object} response.Error
// @Router /api/faqs [get]
func (handler *Handler) GetPublishedFaqs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPublishedFaqs")
	defer scope.End()

	queryParams := gDto.QueryParams{SortBy: model.FieldSortOrder, SortDir: gDto.SortDirAsc}
	queryParams.FromRequest(r, true)

	filterGroup := faqsFilter(r)
	filterGroup.Filters = append(filterGroup.Filters, model.FilterPublished())

	faqs, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get faqs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, faqs)
}

// GetFaqs lists every question, drafts included.
// @Summary Get all FAQs
// @Tags FAQ
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param category query string false "Filter by category"
// @Param published query boolean false "Filter by published flag"
// @Success 200 {object} response.Data[dto.GetFaqsResponse]
// @Failure 500 {object} response.Error
// @Router /api/admin/faqs [get]
// @Security BearerAuth
func (handler *Handler) GetFaqs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFaqs")
	defer scope.End()

	queryParams := gDto.QueryParams{SortBy: model.FieldSortOrder, SortDir: gDto.SortDirAsc}
	queryParams.FromRequest(r, true)

	filterGroup := faqsFilter(r)

	if published := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldPublished)); published != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPublished,
			Operator: gDto.FilterOperatorEq,
			Value:    *published,
			Table:    model.TableName,
		})
	}

	faqs, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get faqs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, faqs)
}

func faqsFilter(r *http.Request) gDto.FilterGroup {
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if category := r.URL.Query().Get(model.FieldCategory); category != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, model.FilterByCategory(category))
	}

	return filterGroup
}

// Vote records whether a question helped. One vote per voter, a new vote replaces the old one.
// @Summary Vote on a FAQ
// @Tags FAQ
// @Accept json
// @Produce json
// @Param id path string true "FAQ ID"
// @Param X-Session-ID header string false "Anonymous voter identity"
// @Param request body dto.VoteRequest true "Vote"
// @Success 200 {object} response.Data[dto.VoteResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/faqs/{id}/vote [post]
func (handler *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Vote")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.VoteRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Vote(ctx, req, id, anonymousKey(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to vote on faq")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// anonymousKey identifies a guest voter by the client supplied session id, else the client ip.
func anonymousKey(r *http.Request) string {
	if key := r.Header.Get(constant.RequestHeaderSessionID); key != constant.Empty {
		return key
	}

	ip, _ := r.Context().Value(constant.ContextKeyClientIP).(string)
	if ip == constant.Empty {
		ip = shared.HostOnly(r.RemoteAddr)
	}

	return ip
}

// GetFaqByID returns one question.
// @Summary Get a FAQ by ID
// @Tags FAQ
// @Produce json
// @Param id path string true "FAQ ID"
// @Success 200 {object} response.Data[dto.FaqResponse]
// @Failure 404 {object} response.Error
// @Router /api/admin/faqs/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetFaqByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFaqByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	faq, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get faq")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, faq)
}

// CreateFaq adds a question.
// @Summary Create a FAQ
// @Tags FAQ
// @Accept json
// @Produce json
// @Param request body dto.CreateFaqRequest true "FAQ"
// @Success 201 {object} response.Data[dto.FaqResponse]
// @Failure 400 {object} response.Error
// @Router /api/admin/faqs [post]
// @Security BearerAuth
func (handler *Handler) CreateFaq(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFaq")
	defer scope.End()

	req := dto.CreateFaqRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create faq")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// UpdateFaq edits a question.
// @Summary Update a FAQ
// @Tags FAQ
// @Accept json
// @Produce json
// @Param id path string true "FAQ ID"
// @Param request body dto.UpdateFaqRequest true "Changes"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/admin/faqs/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateFaq(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateFaq")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateFaqRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update faq")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "FAQ updated successfully")
}

// DeleteFaq removes a question and its votes.
// @Summary Delete a FAQ
// @Tags FAQ
// @Produce json
// @Param id path string true "FAQ ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /api/admin/faqs/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteFaq(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteFaq")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete faq")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("FAQ deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "FAQ deleted successfully")
}
