package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"villa/infras/otel"
	"villa/infras/postgres"
	"villa/internal/domains/inventory/model"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/logger"
	gRepo "villa/shared/repository"

	"github.com/jmoiron/sqlx"
)

var (
	ErrItemNotFound      = errors.New("inventory item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Item interface {
	Insert(ctx context.Context, model model.Item) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Item, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Item, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	ApplyMovement(ctx context.Context, movement model.Movement) (int, error)
}

type Movement interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Movement, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type itemRepository struct {
	gRepo.Repository[model.Item]
	movements gRepo.Repository[model.Movement]
	otel      otel.Otel
}

type movementRepository struct {
	gRepo.Repository[model.Movement]
}

func NewItem(db *postgres.Connection, otel otel.Otel) Item {
	return &itemRepository{
		Repository: gRepo.NewRepository[model.Item](model.EntityItem, model.TableItem, model.FieldID, db, otel),
		movements:  gRepo.NewRepository[model.Movement](model.EntityMovement, model.TableMovement, model.FieldID, db, otel),
		otel:       otel,
	}
}

func NewMovement(db *postgres.Connection, otel otel.Otel) Movement {
	return &movementRepository{
		Repository: gRepo.NewRepository[model.Movement](model.EntityMovement, model.TableMovement, model.FieldID, db, otel),
	}
}

var applyMovementQuery = fmt.Sprintf(`
UPDATE %s
SET %s = %[2]s + $1, %s = $2, %s = $3
WHERE %s = $4
RETURNING %[2]s`, model.TableItem, model.FieldCurrentQuantity, constant.FieldModifiedAt, constant.FieldModifiedBy, model.FieldID)

// ApplyMovement shifts the item's stock by the movement's delta and records the
// movement in the same transaction. It returns the resulting quantity. A result
// below zero rolls everything back with ErrInsufficientStock.
func (r *itemRepository) ApplyMovement(ctx context.Context, movement model.Movement) (quantity int, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityItem+".ApplyMovement")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, applyMovementQuery)

	err = r.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		delta := movement.Type.Delta(movement.Quantity)

		row := tx.QueryRowxContext(ctx, applyMovementQuery, delta, movement.CreatedAt, movement.CreatedBy, movement.ItemID)
		if err := row.Scan(&quantity); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrItemNotFound
			}

			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to update stock (%s): %w", model.EntityItem, err)
		}

		if quantity < 0 {
			return ErrInsufficientStock
		}

		return r.movements.InsertTx(ctx, tx, movement)
	})
	if err != nil {
		scope.TraceError(err)

		return 0, err
	}

	return quantity, nil
}
