package dto

import "learnhub/internal/model"

// CatalogPageDTO is the body of a catalog page request
type CatalogPageDTO struct {
	CategoryID string `json:"categoryId" validate:"required"`
}

// CatalogPageEnvelope documents a catalog page response.
type CatalogPageEnvelope struct {
	Success bool                  `json:"success"`
	Data    model.CatalogPageData `json:"data"`
	Message string                `json:"message"`
}

// CategoryListEnvelope documents a category list response.
type CategoryListEnvelope struct {
	Success bool             `json:"success"`
	Data    []model.Category `json:"data"`
	Message string           `json:"message"`
}
