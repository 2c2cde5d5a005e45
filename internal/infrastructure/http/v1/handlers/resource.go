// Package handlers provides HTTP request handlers.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"hirebase/internal/core/apperror"
	"hirebase/internal/core/entity"
	"hirebase/internal/core/id"
	"hirebase/internal/domain"
	"hirebase/internal/infrastructure/http/v1/dto"
)

// ResourceHandler provides generic CRUD handlers for resource records.
// Per-resource handlers embed it and add action endpoints.
type ResourceHandler[T entity.Validatable, CreateDTO any, UpdateDTO any] struct {
	*BaseHandler
	service    *domain.RecordService[T]
	entityName string

	// Mapper functions
	mapCreateDTO func(dto CreateDTO) (T, error)
	mapUpdateDTO func(dto UpdateDTO, existing T) (T, error)

	// filterKeys whitelists Equals filter query params.
	filterKeys []string
}

// ResourceHandlerConfig configures the resource handler.
type ResourceHandlerConfig[T entity.Validatable, CreateDTO any, UpdateDTO any] struct {
	Service      *domain.RecordService[T]
	EntityName   string
	MapCreateDTO func(dto CreateDTO) (T, error)
	MapUpdateDTO func(dto UpdateDTO, existing T) (T, error)
	FilterKeys   []string
}

// NewResourceHandler creates a new resource handler.
func NewResourceHandler[T entity.Validatable, CreateDTO any, UpdateDTO any](
	base *BaseHandler,
	cfg ResourceHandlerConfig[T, CreateDTO, UpdateDTO],
) *ResourceHandler[T, CreateDTO, UpdateDTO] {
	return &ResourceHandler[T, CreateDTO, UpdateDTO]{
		BaseHandler:  base,
		service:      cfg.Service,
		entityName:   cfg.EntityName,
		mapCreateDTO: cfg.MapCreateDTO,
		mapUpdateDTO: cfg.MapUpdateDTO,
		filterKeys:   cfg.FilterKeys,
	}
}

// List handles GET /{resource} with filtering and pagination.
func (h *ResourceHandler[T, CreateDTO, UpdateDTO]) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("order_by", "-created_at")

	for _, key := range h.filterKeys {
		if val := c.Query(key); val != "" {
			if filter.Equals == nil {
				filter.Equals = make(map[string]any)
			}
			filter.Equals[key] = val
		}
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = item
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Results:  items,
		Count:    result.TotalCount,
		Next:     pageURL(c, result.Offset+result.Limit, result.Limit, result.TotalCount),
		Previous: pageURL(c, result.Offset-result.Limit, result.Limit, result.TotalCount),
	})
}

// Get handles GET /{resource}/:id.
func (h *ResourceHandler[T, CreateDTO, UpdateDTO]) Get(c *gin.Context) {
	recordID, ok := h.recordID(c)
	if !ok {
		return
	}

	record, err := h.service.GetByID(c.Request.Context(), recordID)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Create handles POST /{resource}.
func (h *ResourceHandler[T, CreateDTO, UpdateDTO]) Create(c *gin.Context) {
	var req CreateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	record, err := h.mapCreateDTO(req)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), record); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// Update handles PUT /{resource}/:id.
func (h *ResourceHandler[T, CreateDTO, UpdateDTO]) Update(c *gin.Context) {
	recordID, ok := h.recordID(c)
	if !ok {
		return
	}

	var req UpdateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(c.Request.Context(), recordID)
	if err != nil {
		h.Error(c, err)
		return
	}

	updated, err := h.mapUpdateDTO(req, existing)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Update(c.Request.Context(), updated); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /{resource}/:id.
func (h *ResourceHandler[T, CreateDTO, UpdateDTO]) Delete(c *gin.Context) {
	recordID, ok := h.recordID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), recordID); err != nil {
		h.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ResourceHandler[T, CreateDTO, UpdateDTO]) recordID(c *gin.Context) (id.ID, bool) {
	recordID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return id.Nil(), false
	}
	return recordID, true
}

// pageURL builds a next/previous page URL, or nil when out of range.
func pageURL(c *gin.Context, offset, limit int, total int64) *string {
	if limit <= 0 || offset < 0 || int64(offset) >= total {
		return nil
	}
	q := c.Request.URL.Query()
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))
	u := *c.Request.URL
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
