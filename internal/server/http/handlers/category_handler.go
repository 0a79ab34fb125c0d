package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ventry/ventry/internal/domain/errors"
	"github.com/ventry/ventry/internal/domain/model"
	"github.com/ventry/ventry/internal/domain/repository"
	"github.com/ventry/ventry/internal/server/http/dto"
)

// CategoryHandler processes category operations.
type CategoryHandler struct {
	facade CategoryFacade
}

// NewCategoryHandler creates CategoryHandler instance.
func NewCategoryHandler(facade CategoryFacade) *CategoryHandler {
	return &CategoryHandler{facade: facade}
}

// Create handles POST /api/categories.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	category, err := h.facade.CreateCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		writeCategoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewCategoryResponse(category))
}

// Get handles GET /api/categories/:id.
func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.facade.Category(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCategoryResponse(category))
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(c *gin.Context) {
	filter := model.CategoryFilter{
		Name:   c.Query("name"),
		Search: c.Query("search"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
		Sort:   c.Query("sort"),
	}

	categories, total, err := h.facade.Categories(c.Request.Context(), filter)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := dto.CategoryListResponse{Categories: make([]dto.CategoryResponse, 0, len(categories)), Total: total}
	for i := range categories {
		resp.Categories = append(resp.Categories, dto.NewCategoryResponse(&categories[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Update handles PATCH /api/categories/:id.
func (h *CategoryHandler) Update(c *gin.Context) {
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	category, err := h.facade.UpdateCategory(c.Request.Context(), c.Param("id"), repository.CategoryUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCategoryResponse(category))
}

// Delete handles DELETE /api/categories/:id.
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		writeCategoryError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func writeCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidInput):
		c.Status(http.StatusBadRequest)
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.Status(http.StatusConflict)
	default:
		c.Status(http.StatusInternalServerError)
	}
}
