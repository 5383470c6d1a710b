package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"villa/infras/otel"
	"villa/infras/postgres"
	"villa/shared/constant"
	"villa/shared/dto"
	"villa/shared/logger"

	"github.com/jmoiron/sqlx"
)

var (
	errRequiredFilter = errors.New("required filter")
	errEmptyUpdate    = errors.New("nothing to update")
)

// column is one selectable field. A non-empty alias means the struct field is
// read from table.name under another name.
type column struct {
	name  string
	table string
	alias string
}

func (c column) expr() string {
	switch {
	case c.table == "":
		return c.name
	case c.alias != "":
		return c.table + "." + c.name + " AS " + c.alias
	default:
		return c.table + "." + c.name
	}
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

// TxFunc runs inside a write transaction. Returning an error rolls it back.
type TxFunc func(tx *sqlx.Tx) error

// Repository is the generic CRUD layer every domain repository embeds. The
// column list is read once from the `db`, `table` and `column` tags of T, and
// an optional GetJoinQuery method on T supplies the JOIN clause.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []column
	join          string
	InsertColumns []string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(tableName, reflect.TypeOf(zero))

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		columns:       columns,
		join:          joinOf(zero),
		InsertColumns: insertColumns,
	}
}

func joinOf(model any) string {
	if j, ok := model.(interface{ GetJoinQuery() string }); ok {
		return j.GetJoinQuery()
	}

	return constant.Empty
}

func (repo *Repository[T]) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+repo.entity+"."+op)
}

// fail logs and traces err and wraps it with the action and entity name.
func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

// read prepares query on the read connection and hands the statement to fn.
func (repo *Repository[T]) read(ctx context.Context, scope otel.Scope, query, action string, fn func(*sqlx.NamedStmt) error) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	if err := fn(stmt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}

		return repo.fail(scope, action, err)
	}

	return nil
}

func (repo *Repository[T]) exec(ctx context.Context, scope otel.Scope, exec execer, query, action string, arg any) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, arg); err != nil {
		return repo.fail(scope, action, err)
	}

	return nil
}

func (repo *Repository[T]) insertQuery() string {
	placeholders := make([]string, len(repo.InsertColumns))
	for i, col := range repo.InsertColumns {
		placeholders[i] = ":" + col
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		repo.table, strings.Join(repo.InsertColumns, ", "), strings.Join(placeholders, ", "))
}

// updateQuery sets the columns of mod in sorted order and merges mod into
// the filter arguments.
func (repo *Repository[T]) updateQuery(ctx context.Context, mod map[string]any, filter dto.FilterGroup) (string, map[string]any, error) {
	if len(mod) == 0 {
		return constant.Empty, nil, errEmptyUpdate
	}

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == constant.Empty {
		return constant.Empty, nil, errRequiredFilter
	}

	keys := slices.Sorted(maps.Keys(mod))
	sets := make([]string, len(keys))

	for i, col := range keys {
		sets[i] = col + " = :" + col
	}

	maps.Copy(args, mod)

	return fmt.Sprintf("UPDATE %s SET %s%s", repo.table, strings.Join(sets, ", "), where), args, nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.scope(ctx, "Insert")
	defer scope.End()

	return repo.exec(ctx, scope, repo.db.Write, repo.insertQuery(), "insert data", model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	ctx, scope := repo.scope(ctx, "InsertTx")
	defer scope.End()

	return repo.exec(ctx, scope, sqltx, repo.insertQuery(), "insert data", model)
}

func (repo *Repository[T]) InsertBulk(ctx context.Context, models []T) error {
	return repo.InsertBulkTx(ctx, nil, models)
}

// InsertBulkTx writes every model in one statement. A nil tx uses the write
// connection directly.
func (repo *Repository[T]) InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []T) error {
	ctx, scope := repo.scope(ctx, "InsertBulk")
	defer scope.End()

	if len(models) == 0 {
		return nil
	}

	scope.SetAttribute("rows", len(models))

	var exec execer = repo.db.Write
	if sqltx != nil {
		exec = sqltx
	}

	return repo.exec(ctx, scope, exec, repo.insertQuery(), "bulk insert data", models)
}

// WithTransaction runs fn in a transaction on the write connection, committing
// on success and rolling back on error or panic.
func (repo *Repository[T]) WithTransaction(ctx context.Context, fn TxFunc) error {
	ctx, scope := repo.scope(ctx, "WithTransaction")
	defer scope.End()

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return repo.fail(scope, "begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.ErrorWithStack(rbErr)
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return repo.fail(scope, "commit transaction", err)
	}

	return nil
}

// Table returns the table the repository reads and writes.
func (repo *Repository[T]) Table() string {
	return repo.table
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == constant.Empty {
		return false, errRequiredFilter
	}

	var exist bool

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s%s)", repo.table, where)
	err := repo.read(ctx, scope, query, "check exist data", func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &exist, args)
	})

	return exist, err
}

// Get returns the first matching row, or the zero value when none matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, "Get")
	defer scope.End()

	var model T

	where, args := repo.BuildWhereClause(ctx, filter)
	query := repo.selectQuery(where, columns...)

	err := repo.read(ctx, scope, query, "get data", func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &model, args)
	})
	if errors.Is(err, sql.ErrNoRows) {
		var zero T

		return zero, nil
	}

	return model, err
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	query := repo.selectQuery(where, columns...)

	if params.SortBy != constant.Empty && params.SortDir != constant.Empty {
		query += fmt.Sprintf(" ORDER BY %s %s", params.SortBy, params.SortDir)
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		args["offset"] = params.Offset()
		query += " LIMIT :limit OFFSET :offset"
	}

	var models []T

	err := repo.read(ctx, scope, query, "get all data", func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &models, args)
	})

	return models, err
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	var count int

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s%s%s", repo.table, repo.primaryColumn, repo.table, repo.joinClause(), where)

	err := repo.read(ctx, scope, query, "count data", func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &count, args)
	})

	return count, err
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	return repo.DeleteTx(ctx, nil, filter)
}

// DeleteTx refuses to run without a filter. A nil tx uses the write
// connection directly.
func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Delete")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == constant.Empty {
		return errRequiredFilter
	}

	var exec execer = repo.db.Write
	if sqltx != nil {
		exec = sqltx
	}

	return repo.exec(ctx, scope, exec, "DELETE FROM "+repo.table+where, "delete data", args)
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	return repo.UpdateTx(ctx, nil, mod, filter)
}

// UpdateTx refuses to run without a filter. A nil tx uses the write
// connection directly.
func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Update")
	defer scope.End()

	query, args, err := repo.updateQuery(ctx, mod, filter)
	if err != nil {
		return err
	}

	var exec execer = repo.db.Write
	if sqltx != nil {
		exec = sqltx
	}

	return repo.exec(ctx, scope, exec, query, "update data", args)
}

// BuildWhereClause renders filter with a leading space, or returns an empty
// clause and an empty argument map when the filter has no conditions.
func (repo *Repository[T]) BuildWhereClause(_ context.Context, filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == constant.Empty {
		return constant.Empty, map[string]any{}
	}

	return " WHERE " + where, args
}

func (repo *Repository[T]) joinClause() string {
	if repo.join == constant.Empty {
		return constant.Empty
	}

	return " " + repo.join
}

func (repo *Repository[T]) selectQuery(where string, only ...string) string {
	return fmt.Sprintf("SELECT %s FROM %s%s%s", repo.selectList(only...), repo.table, repo.joinClause(), where)
}

// selectList renders the column list, restricted to only when given.
func (repo *Repository[T]) selectList(only ...string) string {
	exprs := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		exprs = append(exprs, col.expr())
	}

	return strings.Join(exprs, ", ")
}

// getColumns walks the struct tags of t. Embedded structs are flattened, and
// only fields of the repository's own table are insertable.
func getColumns(table string, t reflect.Type) (columns []column, insertColumns []string) {
	for i := range t.NumField() {
		field := t.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			cols, inserts := getColumns(table, field.Type)
			columns = append(columns, cols...)
			insertColumns = append(insertColumns, inserts...)
		}

		dbTag := field.Tag.Get("db")
		if dbTag == constant.Empty {
			continue
		}

		owner := field.Tag.Get("table")
		if owner == constant.Empty {
			owner = table
		}

		if owner == table {
			insertColumns = append(insertColumns, dbTag)
		}

		if name := field.Tag.Get("column"); name != constant.Empty {
			columns = append(columns, column{name: name, table: owner, alias: dbTag})

			continue
		}

		columns = append(columns, column{name: dbTag, table: owner})
	}

	return columns, insertColumns
}
