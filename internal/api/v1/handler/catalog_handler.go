package handler

import (
	"encoding/json"
	"net/http"

	"learnhub/internal/api/v1/dto"
	"learnhub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// CatalogHandler serves the public catalog endpoints
type CatalogHandler struct {
	catalogService service.CatalogService
	validate       *validator.Validate
	logger         zerolog.Logger
}

func NewCatalogHandler(catalogService service.CatalogService, validate *validator.Validate, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validate:       validate,
		logger:         logger.With().Str("handler", "CatalogHandler").Logger(),
	}
}

func (h *CatalogHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /catalog/page-data", h.categoryPageDetails)
	mux.HandleFunc("GET /categories", h.showAllCategories)
}

// categoryPageDetails godoc
// @Summary Catalog page data
// @Description Returns the published courses of a category, a suggestion from another category and the best selling courses.
// @Tags catalog
// @Accept json
// @Produce json
// @Param body body dto.CatalogPageDTO true "Selected category"
// @Success 200 {object} dto.CatalogPageEnvelope
// @Failure 400 {object} dto.Envelope "Invalid JSON payload or validation failed"
// @Failure 404 {object} dto.Envelope "Category not found"
// @Failure 500 {object} dto.Envelope "Internal server error"
// @Router /catalog/page-data [post]
func (h *CatalogHandler) categoryPageDetails(w http.ResponseWriter, r *http.Request) {
	var req dto.CatalogPageDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid JSON payload", err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}
	page, err := h.catalogService.CategoryPageDetails(r.Context(), req.CategoryID)
	if err != nil {
		writeError(w, h.logger, err, "Internal server error")
		return
	}
	writeData(w, page, "Catalog page data fetched successfully")
}

// showAllCategories godoc
// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.CategoryListEnvelope
// @Failure 500 {object} dto.Envelope "Failed to fetch categories"
// @Router /categories [get]
func (h *CatalogHandler) showAllCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ShowAllCategories(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "Failed to fetch categories")
		return
	}
	writeData(w, categories, "Categories fetched successfully")
}
