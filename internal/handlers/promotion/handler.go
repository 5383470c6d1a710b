package promotion

import (
	"net/http"
	"villa/infras/otel"
	"villa/internal/domains/promotion/model"
	"villa/internal/domains/promotion/model/dto"
	"villa/internal/domains/promotion/service"
	"villa/shared"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/validator"
	"villa/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Promotion
	otel    otel.Otel
}

func New(service service.Promotion, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/promotions", handler.GetRunningPromotions)
	router.Get("/promotions/{code}", handler.CheckPromotion)

	router.Get("/admin/promotions", handler.GetPromotions)
	router.Post("/admin/promotions", handler.CreatePromotion)
	router.Get("/admin/promotions/{id}", handler.GetPromotionByID)
	router.Patch("/admin/promotions/{id}", handler.UpdatePromotion)
	router.Delete("/admin/promotions/{id}", handler.DeletePromotion)
}

// GetRunningPromotions lists the promotions that apply today.
// @Summary Get running promotions
// @Tags Promotion
// @Produce json
// @Success 200 {object} response.Data[[]dto.PromotionResponse]
// @Failure 500 {object} response.Error
// @Router /api/promotions [get]
func (handler *Handler) GetRunningPromotions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRunningPromotions")
	defer scope.End()

	promotions, err := handler.service.ListRunning(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get running promotions")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, promotions)
}

// CheckPromotion validates a promotion code for today.
// @Summary Check a promotion code
// @Tags Promotion
// @Produce json
// @Param code path string true "Promotion code"
// @Success 200 {object} response.Data[dto.PromotionResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/promotions/{code} [get]
func (handler *Handler) CheckPromotion(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckPromotion")
	defer scope.End()

	code := chi.URLParam(r, constant.RequestParamCode)

	promotion, err := handler.service.Check(ctx, code)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("code", code).Msg("failed to check promotion")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, promotion)
}

// GetPromotions lists every promotion.
// @Summary Get all promotions
// @Tags Promotion
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param active query boolean false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetPromotionsResponse]
// @Failure 500 {object} response.Error
// @Router /api/admin/promotions [get]
// @Security BearerAuth
func (handler *Handler) GetPromotions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPromotions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	promotions, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get promotions")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, promotions)
}

// GetPromotionByID returns one promotion.
// @Summary Get a promotion by ID
// @Tags Promotion
// @Produce json
// @Param id path string true "Promotion ID"
// @Success 200 {object} response.Data[dto.PromotionResponse]
// @Failure 404 {object} response.Error
// @Router /api/admin/promotions/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPromotionByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPromotionByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	promotion, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get promotion")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, promotion)
}

// CreatePromotion adds a promotion. Codes are stored upper case.
// @Summary Create a promotion
// @Tags Promotion
// @Accept json
// @Produce json
// @Param request body dto.CreatePromotionRequest true "Promotion"
// @Success 201 {object} response.Data[dto.PromotionResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /api/admin/promotions [post]
// @Security BearerAuth
func (handler *Handler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePromotion")
	defer scope.End()

	req := dto.CreatePromotionRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create promotion")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// UpdatePromotion edits a promotion.
// @Summary Update a promotion
// @Tags Promotion
// @Accept json
// @Produce json
// @Param id path string true "Promotion ID"
// @Param request body dto.UpdatePromotionRequest true "Changes"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/admin/promotions/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePromotion")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdatePromotionRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update promotion")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Promotion updated successfully")
}

// DeletePromotion removes a promotion.
// @Summary Delete a promotion
// @Tags Promotion
// @Produce json
// @Param id path string true "Promotion ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /api/admin/promotions/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePromotion")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete promotion")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Promotion deleted successfully")
}
