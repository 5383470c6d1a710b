package dto

import (
	"errors"
	"mime/multipart"
	"time"
	"villa/internal/domains/blog/model"
	"villa/shared"
	gDto "villa/shared/dto"
	gModel "villa/shared/model"
	"villa/shared/slug"
	"villa/shared/timezone"

	"github.com/google/uuid"
)

var (
	ErrInvalidSlug = errors.New("slug may only contain lowercase letters, digits and single hyphens")
	ErrEmptySlug   = errors.New("a slug cannot be derived from the title")
)

type CreatePostRequest struct {
	Title      string  `json:"title"                 validate:"required,max=200"`
	Slug       *string `json:"slug,omitempty"        validate:"omitempty,max=120"`
	Excerpt    *string `json:"excerpt,omitempty"     validate:"omitempty,max=500"`
	Content    string  `json:"content"               validate:"required"`
	CoverImage *string `json:"cover_image,omitempty" validate:"omitempty,url"`
	Published  bool    `json:"published"`
}

// ToModel derives the slug from the title when none is given.
func (r *CreatePostRequest) ToModel(actor string, now time.Time) (model.BlogPost, error) {
	postSlug, err := resolveSlug(r.Slug, r.Title)
	if err != nil {
		return model.BlogPost{}, err
	}

	post := model.BlogPost{
		ID:         uuid.NewString(),
		Slug:       postSlug,
		Title:      r.Title,
		Excerpt:    r.Excerpt,
		Content:    r.Content,
		CoverImage: r.CoverImage,
		Published:  r.Published,
		AuthorID:   &actor,
		Metadata:   gModel.NewMetadata(actor, now),
	}

	if r.Published {
		post.PublishedAt = &now
	}

	return post, nil
}

func resolveSlug(given *string, title string) (string, error) {
	if given != nil && *given != "" {
		if !slug.Valid(*given) {
			return "", ErrInvalidSlug
		}

		return *given, nil
	}

	derived := slug.Make(title)
	if derived == "" {
		return "", ErrEmptySlug
	}

	return derived, nil
}

type UpdatePostRequest struct {
	Title      *string `json:"title,omitempty"       validate:"omitempty,max=200"`
	Slug       *string `json:"slug,omitempty"        validate:"omitempty,max=120"`
	Excerpt    *string `json:"excerpt,omitempty"     validate:"omitempty,max=500"`
	Content    *string `json:"content,omitempty"`
	CoverImage *string `json:"cover_image,omitempty" validate:"omitempty,url"`
	Published  *bool   `json:"published,omitempty"`
}

type PostChanges struct {
	Title       *string    `db:"title"`
	Slug        *string    `db:"slug"`
	Excerpt     *string    `db:"excerpt"`
	Content     *string    `db:"content"`
	CoverImage  *string    `db:"cover_image"`
	Published   *bool      `db:"published"`
	PublishedAt *time.Time `db:"published_at"`
}

// ToChanges stamps published_at the first time a post goes live.
func (r *UpdatePostRequest) ToChanges(current model.BlogPost, now time.Time) (PostChanges, error) {
	changes := PostChanges{
		Title:      r.Title,
		Excerpt:    r.Excerpt,
		Content:    r.Content,
		CoverImage: r.CoverImage,
		Published:  r.Published,
	}

	if r.Slug != nil {
		if !slug.Valid(*r.Slug) {
			return changes, ErrInvalidSlug
		}

		changes.Slug = r.Slug
	}

	if r.Published != nil && *r.Published && current.PublishedAt == nil {
		changes.PublishedAt = &now
	}

	return changes, nil
}

type PostResponse struct {
	ID          string  `json:"id"`
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Excerpt     *string `json:"excerpt,omitempty"`
	Content     string  `json:"content"`
	CoverImage  *string `json:"cover_image,omitempty"`
	Published   bool    `json:"published"`
	PublishedAt *string `json:"published_at,omitempty"`
	AuthorID    *string `json:"author_id,omitempty"`
	gDto.Metadata
}

func (r *PostResponse) FromModel(model model.BlogPost) {
	r.ID = model.ID
	r.Slug = model.Slug
	r.Title = model.Title
	r.Excerpt = model.Excerpt
	r.Content = model.Content
	r.CoverImage = model.CoverImage
	r.Published = model.Published
	r.AuthorID = model.AuthorID
	r.Metadata.FromModel(model.Metadata)

	if model.PublishedAt != nil {
		publishedAt := timezone.FormatISO(*model.PublishedAt)
		r.PublishedAt = &publishedAt
	}
}

type GetPostsResponse struct {
	Posts     []PostResponse `json:"posts"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetPostsResponse) FromModels(models []model.BlogPost, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Posts = make([]PostResponse, len(models))
	for i, m := range models {
		r.Posts[i].FromModel(m)
	}
}

type UploadCoverRequest struct {
	Image     *multipart.FileHeader `json:"image" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	ImageFile multipart.File        `json:"-"`
}

type UploadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}
