package dto

import (
	"villa/shared/constant"
	"villa/shared/model"
)

// Metadata is the audit block every listing carries.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(source model.Metadata) {
	*m = Metadata{
		CreatedAt:  source.CreatedAt.UTC().Format(constant.ISODateFormat),
		ModifiedAt: source.ModifiedAt.UTC().Format(constant.ISODateFormat),
		CreatedBy:  source.CreatedBy,
		ModifiedBy: source.ModifiedBy,
	}
}
