package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"villa/infras/otel"
	"villa/infras/postgres"
	"villa/internal/domains/blog/model"
	gDto "villa/shared/dto"
	gRepo "villa/shared/repository"
)

type BlogPost interface {
	Insert(ctx context.Context, model model.BlogPost) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BlogPost, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BlogPost, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.BlogPost]
}

func New(db *postgres.Connection, otel otel.Otel) BlogPost {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.BlogPost](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
