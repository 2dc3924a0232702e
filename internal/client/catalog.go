package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"learnhub/internal/model"

	"github.com/rs/zerolog"
)

// Endpoint paths relative to the API base URL
const (
	CatalogPageDataPath = "/v1/catalog/page-data"
	CategoriesPath      = "/v1/categories"
)

const catalogFallbackMessage = "Something went wrong while fetching category page data"

var errCatalogUnsuccessful = errors.New("Could Not Fetch Category page data.")

// Result is the envelope returned by the API, or the local rendition of a failure.
type Result struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message"`
}

// CatalogPage decodes the data of a successful catalog page result.
func (r Result) CatalogPage() (*model.CatalogPageData, error) {
	if !r.Success || len(r.Data) == 0 {
		return nil, errors.New("result carries no catalog page data")
	}
	var page model.CatalogPageData
	if err := json.Unmarshal(r.Data, &page); err != nil {
		return nil, fmt.Errorf("failed to decode catalog page data: %w", err)
	}
	return &page, nil
}

// CatalogAPI fetches catalog views for display.
type CatalogAPI struct {
	conn     *Connector
	notifier Notifier
	logger   zerolog.Logger
}

func NewCatalogAPI(conn *Connector, notifier Notifier, logger zerolog.Logger) *CatalogAPI {
	return &CatalogAPI{
		conn:     conn,
		notifier: notifier,
		logger:   logger.With().Str("client", "CatalogAPI").Logger(),
	}
}

// apiError is a response the server answered with a non-2xx status.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string {
	if e.message != "" {
		return e.message
	}
	return fmt.Sprintf("request failed with status %d", e.status)
}

// GetCatalogPageData fetches the catalog page of a category. Failures are
// reported through the notifier and returned as an unsuccessful Result; the
// loading notification is always dismissed.
func (c *CatalogAPI) GetCatalogPageData(ctx context.Context, categoryID string) (result Result) {
	toastID := c.notifier.Loading("Loading...")
	defer c.notifier.Dismiss(toastID)
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			c.logger.Error().Err(err).Msg("CATALOGPAGEDATA_API API ERROR")
			c.notifier.Error(catalogFallbackMessage)
			result = Result{Success: false, Message: err.Error()}
		}
	}()

	body, err := c.fetch(ctx, categoryID)
	if err == nil && !body.Success {
		err = errCatalogUnsuccessful
	}
	if err != nil {
		c.logger.Error().Err(err).Str("category_id", categoryID).Msg("CATALOGPAGEDATA_API API ERROR")

		var apiErr *apiError
		if errors.As(err, &apiErr) && apiErr.message != "" {
			c.notifier.Error(apiErr.message)
		} else {
			c.notifier.Error(catalogFallbackMessage)
		}
		return Result{Success: false, Message: err.Error()}
	}
	return body
}

func (c *CatalogAPI) fetch(ctx context.Context, categoryID string) (Result, error) {
	resp, err := c.conn.Do(ctx, http.MethodPost, CatalogPageDataPath, map[string]string{"categoryId": categoryID}, nil, nil)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read response: %w", err)
	}

	var body Result
	decodeErr := json.Unmarshal(data, &body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, &apiError{status: resp.StatusCode, message: body.Message}
	}
	if decodeErr != nil {
		return Result{}, fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	return body, nil
}

// ListCategories returns every category.
func (c *CatalogAPI) ListCategories(ctx context.Context) ([]model.Category, error) {
	resp, err := c.conn.Do(ctx, http.MethodGet, CategoriesPath, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body Result
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !body.Success {
		return nil, &apiError{status: resp.StatusCode, message: body.Message}
	}
	var categories []model.Category
	if err := json.Unmarshal(body.Data, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}
