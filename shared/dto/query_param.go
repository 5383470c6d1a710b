package dto

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"villa/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"

	// MaxLimit caps a page so nobody pulls the whole booking table at once.
	MaxLimit = 100
)

// sort_by goes into ORDER BY verbatim, so only plain column names pass.
var sortColumnPattern = regexp.MustCompile(`^[a-z_]+(\.[a-z_]+)?$`)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string.
// Values already set on q act as the handler's own defaults; withDefaults
// fills whatever is still empty with the global ones.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	query := r.URL.Query()

	if page, err := strconv.Atoi(query.Get(constant.RequestParamPage)); err == nil && page > 0 {
		q.Page = page
	}

	if limit, err := strconv.Atoi(query.Get(constant.RequestParamLimit)); err == nil && limit > 0 {
		q.Limit = min(limit, MaxLimit)
	}

	if sortBy := query.Get(constant.RequestParamSortBy); sortColumnPattern.MatchString(sortBy) {
		q.SortBy = sortBy
	}

	switch sortDir := strings.ToUpper(query.Get(constant.RequestParamSortDir)); sortDir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = sortDir
	}

	if !withDefaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}

	if q.SortBy == "" {
		q.SortBy = constant.DefaultValueSortBy
	}

	if q.SortDir == "" {
		q.SortDir = constant.DefaultValueSortDir
	}
}

// Offset is the number of rows to skip for the current page.
func (q QueryParams) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}
