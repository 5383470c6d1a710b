package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"villa/infras/otel"
	"villa/infras/postgres"
	"villa/internal/domains/faq/model"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/logger"
	gRepo "villa/shared/repository"

	"github.com/jmoiron/sqlx"
)

var ErrFaqNotFound = errors.New("faq not found")

type Faq interface {
	Insert(ctx context.Context, model model.Faq) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Faq, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Faq, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Vote(ctx context.Context, vote model.Vote) (model.VoteCounts, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Faq]
	otel        otel.Otel
	upsertQuery string
}

func New(db *postgres.Connection, otel otel.Otel) Faq {
	votes := gRepo.NewRepository[model.Vote](model.EntityVote, model.TableVote, model.FieldID, db, otel)

	return &repositoryImpl{
		Repository:  gRepo.NewRepository[model.Faq](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:        otel,
		upsertQuery: buildUpsertVoteQuery(votes.InsertColumns),
	}
}

// a repeat vote from the same voter flips the existing row instead of adding one
func buildUpsertVoteQuery(columns []string) string {
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		placeholders[i] = ":" + col
	}

	return fmt.Sprintf(`
INSERT INTO %s (%s) VALUES (%s)
ON CONFLICT (%s, %s) DO UPDATE SET
	%s = EXCLUDED.%[6]s,
	%s = EXCLUDED.%[7]s,
	%s = EXCLUDED.%[8]s`,
		model.TableVote, strings.Join(columns, ", "), strings.Join(placeholders, ", "),
		model.FieldFaqID, model.FieldVoterKey,
		model.FieldHelpful, constant.FieldModifiedAt, constant.FieldModifiedBy)
}

var lockQuery = fmt.Sprintf(`SELECT %[2]s FROM %[1]s WHERE %[2]s = $1 FOR UPDATE`, model.TableName, model.FieldID)

var recountQuery = fmt.Sprintf(`
UPDATE %[1]s SET
	%[3]s = (SELECT COUNT(1) FROM %[2]s v WHERE v.%[5]s = $1 AND v.%[6]s),
	%[4]s = (SELECT COUNT(1) FROM %[2]s v WHERE v.%[5]s = $1 AND NOT v.%[6]s)
WHERE %[7]s = $1
RETURNING %[3]s, %[4]s`,
	model.TableName, model.TableVote, model.FieldHelpfulVotes, model.FieldNotHelpfulVotes,
	model.FieldFaqID, model.FieldHelpful, model.FieldID)

// Vote locks the faq row, upserts the voter's row and recounts both tallies
// from the stored votes in one transaction. The lock serializes votes on the
// same faq so a recount always sees every committed vote.
func (r *repositoryImpl) Vote(ctx context.Context, vote model.Vote) (counts model.VoteCounts, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Vote")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, lockQuery+";"+r.upsertQuery+";"+recountQuery)

	err = r.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		var id string
		if err := tx.QueryRowxContext(ctx, lockQuery, vote.FaqID).Scan(&id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrFaqNotFound
			}

			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to lock (%s): %w", model.EntityName, err)
		}

		if _, err := tx.NamedExecContext(ctx, r.upsertQuery, vote); err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to upsert vote (%s): %w", model.EntityVote, err)
		}

		if err := tx.QueryRowxContext(ctx, recountQuery, vote.FaqID).StructScan(&counts); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrFaqNotFound
			}

			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to recount votes (%s): %w", model.EntityName, err)
		}

		return nil
	})
	if err != nil {
		scope.TraceError(err)

		return counts, err
	}

	return counts, nil
}
