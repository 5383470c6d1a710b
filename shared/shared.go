package shared

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"html"
	"net"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"villa/shared/cache"
	"villa/shared/constant"
	"villa/shared/dto"
	"villa/shared/timezone"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// ConvertStringToBool parses an optional boolean query value. Blank or
// unparsable input yields nil so the caller skips the filter.
func ConvertStringToBool(value string) *bool {
	value = strings.TrimSpace(value)
	if value == constant.Empty {
		return nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn().Str("value", value).Msg("ignoring non-boolean query value")

		return nil
	}

	return &parsed
}

func ConvertStringToInt(value string, fallback int) int {
	value = strings.TrimSpace(value)
	if value == constant.Empty {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Str("value", value).Msg("ignoring non-numeric value")

		return fallback
	}

	return parsed
}

// CalculateTotalPage never reports less than one page.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields maps the non-zero `db` tagged fields of a change struct to
// column values and stamps the update audit columns.
func TransformFields(data any, username string) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(data))
	typ := val.Type()

	fields := make(map[string]any, val.NumField()+2)

	for i := range val.NumField() {
		column := typ.Field(i).Tag.Get("db")
		if column == constant.Empty || val.Field(i).IsZero() {
			continue
		}

		fields[column] = val.Field(i).Interface()
	}

	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = username

	return fields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins the prefix and the parts with ':'.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}

// BuildCacheKeyWithQuery keys a list query by its paging and a digest of its filter,
// so every variant lives under prefix and can be cleared with InvalidateCaches.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	keys := make([]string, 0, len(args))
	for key := range args {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	var builder strings.Builder

	builder.WriteString(where)

	for _, key := range keys {
		fmt.Fprintf(&builder, "|%s=%v", key, args[key])
	}

	sum := sha256.Sum256([]byte(builder.String()))

	return BuildCacheKey(prefix,
		strconv.Itoa(params.Page),
		strconv.Itoa(params.Limit),
		params.SortBy,
		params.SortDir,
		hex.EncodeToString(sum[:8]),
	)
}

// InvalidateCaches removes every key under prefix. Errors are logged only.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return constant.Empty
}

// IsUniqueViolation reports whether err is a Postgres unique constraint violation.
func IsUniqueViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeFkViolation
}

// HostOnly drops the port from a host:port address and returns anything
// else unchanged.
func HostOnly(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}

	return host
}

// TextToHTML escapes plain text and keeps its line breaks, for emails written as text.
func TextToHTML(text string) string {
	return strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
}
