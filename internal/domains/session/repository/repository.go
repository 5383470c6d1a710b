package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"villa/infras/otel"
	"villa/infras/postgres"
	"villa/internal/domains/session/model"
	gDto "villa/shared/dto"
	gRepo "villa/shared/repository"
)

type Session interface {
	Insert(ctx context.Context, model model.Session) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Session, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Session]
}

func New(db *postgres.Connection, otel otel.Otel) Session {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Session](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
