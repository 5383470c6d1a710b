package inventory

import (
	"net/http"
	"villa/infras/otel"
	"villa/internal/domains/inventory/model"
	"villa/internal/domains/inventory/model/dto"
	"villa/internal/domains/inventory/service"
	"villa/shared"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/validator"
	"villa/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const queryLowStock = "low_stock"

type Handler struct {
	service service.Inventory
	otel    otel.Otel
}

func New(service service.Inventory, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/admin/inventory", handler.GetItems)
	router.Post("/admin/inventory", handler.CreateItem)
	router.Get("/admin/inventory/low-stock", handler.GetLowStock)
	router.Get("/admin/inventory/{id}", handler.GetItemByID)
	router.Patch("/admin/inventory/{id}", handler.UpdateItem)
	router.Delete("/admin/inventory/{id}", handler.DeleteItem)
	router.Get("/admin/inventory/{id}/movements", handler.GetMovements)
	router.Post("/admin/inventory/{id}/movements", handler.RecordMovement)
}

// GetItems lists inventory items.
// @Summary Get inventory items
// @Tags Inventory
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param q query string false "Search by name"
// @Param category query string false "Filter by category"
// @Param low_stock query boolean false "Only items at or below their minimum"
// @Success 200 {object} response.Data[dto.GetItemsResponse]
// @Failure 500 {object} response.Error
// @Router /api/admin/inventory [get]
// @Security BearerAuth
func (handler *Handler) GetItems(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItems")
	defer scope.End()

	queryParams := gDto.QueryParams{SortBy: model.FieldName, SortDir: gDto.SortDirAsc}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if search := query.Get(constant.RequestParamSearch); search != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, model.FilterSearch(search))
	}

	if category := query.Get(model.FieldCategory); category != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, model.FilterByCategory(category))
	}

	if lowStock := shared.ConvertStringToBool(query.Get(queryLowStock)); lowStock != nil && *lowStock {
		filterGroup.Filters = append(filterGroup.Filters, model.FilterLowStock())
	}

	items, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get inventory items")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, items)
}

// GetLowStock lists items whose quantity is at or below their minimum.
// @Summary Get low stock items
// @Tags Inventory
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetItemsResponse]
// @Failure 500 {object} response.Error
// @Router /api/admin/inventory/low-stock [get]
// @Security BearerAuth
func (handler *Handler) GetLowStock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLowStock")
	defer scope.End()

	queryParams := gDto.QueryParams{SortBy: model.FieldCurrentQuantity, SortDir: gDto.SortDirAsc}
	queryParams.FromRequest(r, true)

	items, err := handler.service.LowStock(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get low stock items")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, items)
}

// GetItemByID returns one inventory item.
// @Summary Get an inventory item
// @Tags Inventory
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.Data[dto.ItemResponse]
// @Failure 404 {object} response.Error
// @Router /api/admin/inventory/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetItemByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItemByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	item, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get inventory item")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, item)
}

// CreateItem adds an inventory item.
// @Summary Create an inventory item
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body dto.CreateItemRequest true "Item"
// @Success 201 {object} response.Data[dto.ItemResponse]
// @Failure 400 {object} response.Error
// @Router /api/admin/inventory [post]
// @Security BearerAuth
func (handler *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateItem")
	defer scope.End()

	req := dto.CreateItemRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create inventory item")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Inventory item created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// UpdateItem edits item details. Quantities only change through movements.
// @Summary Update an inventory item
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body dto.UpdateItemRequest true "Changes"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/admin/inventory/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateItem")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateItemRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update inventory item")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Inventory item updated successfully")
}

// DeleteItem removes an item together with its movement history.
// @Summary Delete an inventory item
// @Tags Inventory
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /api/admin/inventory/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteItem")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete inventory item")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Inventory item deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Inventory item deleted successfully")
}

// RecordMovement books stock in or out of an item.
// @Summary Record a stock movement
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body dto.CreateMovementRequest true "Movement"
// @Success 201 {object} response.Data[dto.MovementResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "Quantity would go below zero"
// @Router /api/admin/inventory/{id}/movements [post]
// @Security BearerAuth
func (handler *Handler) RecordMovement(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RecordMovement")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.CreateMovementRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.RecordMovement(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to record inventory movement")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetMovements lists the movement history of an item.
// @Summary Get stock movements
// @Tags Inventory
// @Produce json
// @Param id path string true "Item ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetMovementsResponse]
// @Failure 404 {object} response.Error
// @Router /api/admin/inventory/{id}/movements [get]
// @Security BearerAuth
func (handler *Handler) GetMovements(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMovements")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	movements, err := handler.service.Movements(ctx, queryParams, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get inventory movements")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, movements)
}
