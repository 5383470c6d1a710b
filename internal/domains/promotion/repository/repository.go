package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"villa/infras/otel"
	"villa/infras/postgres"
	"villa/internal/domains/promotion/model"
	gDto "villa/shared/dto"
	gRepo "villa/shared/repository"
)

type Promotion interface {
	Insert(ctx context.Context, model model.Promotion) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Promotion, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Promotion, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Promotion]
}

func New(db *postgres.Connection, otel otel.Otel) Promotion {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Promotion](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
