package dto

import (
	"mime/multipart"
	"strings"
	"villa/internal/domains/gallery/model"
	"villa/shared"
	gDto "villa/shared/dto"
	gModel "villa/shared/model"
	"villa/shared/timezone"

	"github.com/google/uuid"
)

const DefaultCategory = "general"

// CreateImageRequest is read from a multipart form: the photo plus its captions.
type CreateImageRequest struct {
	Title       string                `json:"title"       validate:"required,max=100"`
	Description *string               `json:"description" validate:"omitempty,max=500"`
	Category    string                `json:"category"    validate:"omitempty,max=50"`
	SortOrder   int                   `json:"sort_order"  validate:"gte=0"`
	Image       *multipart.FileHeader `json:"image"       swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=10"`
	ImageFile   multipart.File        `json:"-"`
}

func (c *CreateImageRequest) ToModel(actor, url string) model.GalleryImage {
	category := strings.ToLower(strings.TrimSpace(c.Category))
	if category == "" {
		category = DefaultCategory
	}

	return model.GalleryImage{
		ID:          uuid.NewString(),
		Title:       c.Title,
		Description: c.Description,
		URL:         url,
		Category:    category,
		SortOrder:   c.SortOrder,
		Metadata:    gModel.NewMetadata(actor, timezone.Now()),
	}
}

type UpdateImageRequest struct {
	Title       *string `db:"title"       json:"title,omitempty"       validate:"omitempty,max=100"`
	Description *string `db:"description" json:"description,omitempty" validate:"omitempty,max=500"`
	Category    *string `db:"category"    json:"category,omitempty"    validate:"omitempty,max=50"`
	SortOrder   *int    `db:"sort_order"  json:"sort_order,omitempty"  validate:"omitempty,gte=0"`
}

type ImageResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	URL         string  `json:"url"`
	Category    string  `json:"category"`
	SortOrder   int     `json:"sort_order"`
	gDto.Metadata
}

func (r *ImageResponse) FromModel(model model.GalleryImage) {
	r.ID = model.ID
	r.Title = model.Title
	r.Description = model.Description
	r.URL = model.URL
	r.Category = model.Category
	r.SortOrder = model.SortOrder
	r.Metadata.FromModel(model.Metadata)
}

type GetImagesResponse struct {
	Images    []ImageResponse `json:"images"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetImagesResponse) FromModels(models []model.GalleryImage, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Images = make([]ImageResponse, len(models))
	for i, m := range models {
		r.Images[i].FromModel(m)
	}
}
