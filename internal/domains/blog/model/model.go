package model

import (
	"time"
	"villa/shared/dto"
	"villa/shared/model"
)

const (
	TableName  = "blog_posts"
	EntityName = "blog_post"

	FieldID          = "id"
	FieldSlug        = "slug"
	FieldTitle       = "title"
	FieldExcerpt     = "excerpt"
	FieldContent     = "content"
	FieldCoverImage  = "cover_image"
	FieldPublished   = "published"
	FieldPublishedAt = "published_at"
	FieldAuthorID    = "author_id"

	// CoverDirectory is the bucket directory cover images are uploaded to.
	CoverDirectory = "blog"
)

type BlogPost struct {
	ID          string     `db:"id"`
	Slug        string     `db:"slug"`
	Title       string     `db:"title"`
	Excerpt     *string    `db:"excerpt"`
	Content     string     `db:"content"`
	CoverImage  *string    `db:"cover_image"`
	Published   bool       `db:"published"`
	PublishedAt *time.Time `db:"published_at"`
	AuthorID    *string    `db:"author_id"`
	model.Metadata
}

func FilterPublished() dto.Filter {
	return dto.Filter{
		Field:    FieldPublished,
		Operator: dto.FilterOperatorEq,
		Value:    true,
		Table:    TableName,
	}
}

func FilterBySlug(slug string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    FieldSlug,
				Operator: dto.FilterOperatorEq,
				Value:    slug,
				Table:    TableName,
			},
		},
	}
}

// FilterSlugTaken matches another post already using slug.
func FilterSlugTaken(slug, excludeID string) dto.FilterGroup {
	filter := FilterBySlug(slug)

	if excludeID != "" {
		filter.Filters = append(filter.Filters, dto.Filter{
			Field:    FieldID,
			Operator: dto.FilterOperatorNotEq,
			Value:    excludeID,
			Table:    TableName,
		})
	}

	return filter
}

func FilterSearch(query string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorOr,
		Filters: []any{
			dto.Filter{
				ArgName:  "search_title",
				Field:    FieldTitle,
				Operator: dto.FilterOperatorLike,
				Value:    query,
				Table:    TableName,
			},
			dto.Filter{
				ArgName:  "search_excerpt",
				Field:    FieldExcerpt,
				Operator: dto.FilterOperatorLike,
				Value:    query,
				Table:    TableName,
			},
		},
	}
}
