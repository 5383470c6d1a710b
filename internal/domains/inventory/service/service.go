package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"villa/infras/otel"
	"villa/internal/domains/inventory/model"
	"villa/internal/domains/inventory/model/dto"
	"villa/internal/domains/inventory/repository"
	"villa/shared"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	errItemNotFound      = "inventory item not found"
	errInsufficientStock = "movement would take stock below zero"
)

type Inventory interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetItemsResponse, error)
	LowStock(ctx context.Context, params gDto.QueryParams) (dto.GetItemsResponse, error)
	Get(ctx context.Context, id string) (dto.ItemResponse, error)
	Create(ctx context.Context, req dto.CreateItemRequest) (dto.ItemResponse, error)
	Update(ctx context.Context, req dto.UpdateItemRequest, id string) error
	Delete(ctx context.Context, id string) error
	RecordMovement(ctx context.Context, req dto.CreateMovementRequest, itemID string) (dto.MovementResponse, error)
	Movements(ctx context.Context, params gDto.QueryParams, itemID string) (dto.GetMovementsResponse, error)
}

type serviceImpl struct {
	items     repository.Item
	movements repository.Movement
	otel      otel.Otel
}

func New(items repository.Item, movements repository.Movement, otel otel.Otel) Inventory {
	return &serviceImpl{
		items:     items,
		movements: movements,
		otel:      otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetItemsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.items.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count inventory items")

		return res, fmt.Errorf("failed to count inventory items: %w", err)
	}

	items, err := s.items.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get inventory items")

		return res, fmt.Errorf("failed to get inventory items: %w", err)
	}

	res.FromModels(items, total, params.Limit)

	return res, nil
}

// LowStock lists items at or under their minimum quantity.
func (s *serviceImpl) LowStock(ctx context.Context, params gDto.QueryParams) (dto.GetItemsResponse, error) {
	return s.GetAll(ctx, params, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{model.FilterLowStock()},
	})
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	item, err := s.items.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableItem))
	if err != nil {
		log.Error().Err(err).Msg("failed to get inventory item")

		return res, fmt.Errorf("failed to get inventory item: %w", err)
	}

	if item.ID == constant.Empty {
		return res, failure.NotFound(errItemNotFound)
	}

	res.FromModel(item)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateItemRequest) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	item := req.ToModel(actor)

	if err = s.items.Insert(ctx, item); err != nil {
		log.Error().Err(err).Msg("failed to create inventory item")

		return res, fmt.Errorf("failed to create inventory item: %w", err)
	}

	res.FromModel(item)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateItemRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateItemRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filter := shared.FilterByID(id, model.FieldID, model.TableItem)

	if err = s.ensureExists(ctx, filter); err != nil {
		return err
	}

	if err = s.items.Update(ctx, shared.TransformFields(req, actor), filter); err != nil {
		log.Error().Err(err).Msg("failed to update inventory item")

		return fmt.Errorf("failed to update inventory item: %w", err)
	}

	return nil
}

// Delete removes the item together with its movement history.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableItem)

	if err = s.ensureExists(ctx, filter); err != nil {
		return err
	}

	if err = s.items.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete inventory item")

		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	return nil
}

func (s *serviceImpl) RecordMovement(ctx context.Context, req dto.CreateMovementRequest, itemID string) (res dto.MovementResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordMovement")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !req.Type.IsValid() || req.Quantity <= 0 {
		return res, failure.BadRequestFromString("movement needs a known type and a positive quantity")
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var userID *string
	if actor != constant.Empty {
		userID = &actor
	}

	movement := req.ToModel(itemID, userID, actor)

	quantity, err := s.items.ApplyMovement(ctx, movement)

	switch {
	case errors.Is(err, repository.ErrItemNotFound):
		return res, failure.NotFound(errItemNotFound)
	case errors.Is(err, repository.ErrInsufficientStock):
		return res, failure.Conflict(errInsufficientStock)
	case err != nil:
		log.Error().Err(err).Str("itemID", itemID).Msg("failed to record inventory movement")

		return res, fmt.Errorf("failed to record inventory movement: %w", err)
	}

	log.Info().Str("itemID", itemID).Str("type", string(movement.Type)).Int("quantity", quantity).Msg("inventory movement recorded")

	res.FromModel(movement)
	res.CurrentQuantity = &quantity

	return res, nil
}

func (s *serviceImpl) Movements(ctx context.Context, params gDto.QueryParams, itemID string) (res dto.GetMovementsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Movements")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureExists(ctx, shared.FilterByID(itemID, model.FieldID, model.TableItem)); err != nil {
		return res, err
	}

	filter := model.FilterMovementsByItem(itemID)

	total, err := s.movements.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count inventory movements")

		return res, fmt.Errorf("failed to count inventory movements: %w", err)
	}

	movements, err := s.movements.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get inventory movements")

		return res, fmt.Errorf("failed to get inventory movements: %w", err)
	}

	res.FromModels(movements, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) ensureExists(ctx context.Context, filter gDto.FilterGroup) error {
	exist, err := s.items.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check inventory item")

		return fmt.Errorf("failed to check inventory item: %w", err)
	}

	if !exist {
		return failure.NotFound(errItemNotFound)
	}

	return nil
}
