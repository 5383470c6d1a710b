package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"villa/infras/otel"
	"villa/infras/postgres"
	"villa/internal/domains/chat/model"
	userModel "villa/internal/domains/user/model"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/logger"
	gRepo "villa/shared/repository"
)

type ChatMessage interface {
	Insert(ctx context.Context, model model.ChatMessage) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ChatMessage, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Conversations(ctx context.Context) ([]model.Conversation, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.ChatMessage]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) ChatMessage {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ChatMessage](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// the newest message of every thread, with the count of guest messages not yet read
var conversationsQuery = fmt.Sprintf(`
SELECT * FROM (
	SELECT DISTINCT ON (m.user_id)
		m.user_id,
		u.username,
		m.body AS last_body,
		m.sender AS last_sender,
		m.created_at AS last_at,
		(SELECT COUNT(1) FROM %[1]s c WHERE c.user_id = m.user_id AND c.sender = '%[3]s' AND c.read = FALSE) AS unread_count
	FROM %[1]s m
	JOIN %[2]s u ON u.id = m.user_id
	ORDER BY m.user_id, m.created_at DESC
) conversations
ORDER BY last_at DESC`, model.TableName, userModel.TableName, model.SenderGuest)

func (r *repositoryImpl) Conversations(ctx context.Context) ([]model.Conversation, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Conversations")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, conversationsQuery)

	var conversations []model.Conversation

	if err := r.db.Read.SelectContext(ctx, &conversations, conversationsQuery); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get conversations (%s): %w", model.EntityName, err)
	}

	return conversations, nil
}
