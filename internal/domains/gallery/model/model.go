package model

import (
	"villa/shared/dto"
	"villa/shared/model"
)

const (
	TableName  = "gallery_images"
	EntityName = "gallery_image"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldURL         = "url"
	FieldCategory    = "category"
	FieldSortOrder   = "sort_order"

	// ImageDirectory is the bucket directory gallery photos are uploaded to.
	ImageDirectory = "gallery"
)

type GalleryImage struct {
	ID          string  `db:"id"`
	Title       string  `db:"title"`
	Description *string `db:"description"`
	URL         string  `db:"url"`
	Category    string  `db:"category"`
	SortOrder   int     `db:"sort_order"`
	model.Metadata
}

func FilterByCategory(category string) dto.Filter {
	return dto.Filter{
		Field:    FieldCategory,
		Operator: dto.FilterOperatorEq,
		Value:    category,
		Table:    TableName,
	}
}
