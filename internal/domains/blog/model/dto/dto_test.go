package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"villa/internal/domains/blog/model"
	"villa/internal/domains/blog/model/dto"
)

func TestCreatePostRequest_ToModel(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("slug from title and published_at when published", func(t *testing.T) {
		req := dto.CreatePostRequest{Title: "Best Beaches Nearby", Content: "...", Published: true}

		post, err := req.ToModel("admin-1", now)

		assert.NoError(t, err)
		assert.Equal(t, "best-beaches-nearby", post.Slug)
		assert.Equal(t, &now, post.PublishedAt)
		assert.Equal(t, "admin-1", *post.AuthorID)
	})

	t.Run("drafts have no published_at", func(t *testing.T) {
		req := dto.CreatePostRequest{Title: "Draft", Content: "..."}

		post, err := req.ToModel("admin-1", now)

		assert.NoError(t, err)
		assert.Nil(t, post.PublishedAt)
	})

	t.Run("given slug must be clean", func(t *testing.T) {
		bad := "Not A Slug"
		req := dto.CreatePostRequest{Title: "Title", Slug: &bad, Content: "..."}

		_, err := req.ToModel("admin-1", now)

		assert.ErrorIs(t, err, dto.ErrInvalidSlug)
	})

	t.Run("title without letters", func(t *testing.T) {
		req := dto.CreatePostRequest{Title: "!!!", Content: "..."}

		_, err := req.ToModel("admin-1", now)

		assert.ErrorIs(t, err, dto.ErrEmptySlug)
	})
}

func TestUpdatePostRequest_ToChanges(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	published := true

	t.Run("first publication stamps published_at", func(t *testing.T) {
		req := dto.UpdatePostRequest{Published: &published}

		changes, err := req.ToChanges(model.BlogPost{}, now)

		assert.NoError(t, err)
		assert.Equal(t, &now, changes.PublishedAt)
	})

	t.Run("republishing keeps the original date", func(t *testing.T) {
		earlier := now.AddDate(0, -1, 0)
		req := dto.UpdatePostRequest{Published: &published}

		changes, err := req.ToChanges(model.BlogPost{PublishedAt: &earlier}, now)

		assert.NoError(t, err)
		assert.Nil(t, changes.PublishedAt)
	})
}
