package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"
	"villa/infras/otel"
	"villa/infras/postgres"
	"villa/internal/domains/booking/model"
	gDto "villa/shared/dto"
	gRepo "villa/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// Overlaps reports whether a confirmed booking other than excludeID
	// shares a night with [start, end).
	Overlaps(ctx context.Context, start, end time.Time, excludeID string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) Overlaps(ctx context.Context, start, end time.Time, excludeID string) (bool, error) {
	return r.Exist(ctx, model.FilterOverlapping(start, end, excludeID))
}
