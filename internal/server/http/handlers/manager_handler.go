package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ventry/ventry/internal/domain/errors"
	"github.com/ventry/ventry/internal/domain/model"
	"github.com/ventry/ventry/internal/server/http/dto"
)

// ManagerHandler processes staff administration, superadmin only.
type ManagerHandler struct {
	facade ManagerFacade
}

// NewManagerHandler creates ManagerHandler instance.
func NewManagerHandler(facade ManagerFacade) *ManagerHandler {
	return &ManagerHandler{facade: facade}
}

// Create handles POST /api/managers.
func (h *ManagerHandler) Create(c *gin.Context) {
	var req dto.CreateManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	manager, err := h.facade.CreateManager(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidInput):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.NewManagerResponse(manager))
}

// List handles GET /api/managers.
func (h *ManagerHandler) List(c *gin.Context) {
	filter := model.ManagerFilter{
		Page:  queryInt(c, "page"),
		Limit: queryInt(c, "limit"),
	}

	managers, total, err := h.facade.Managers(c.Request.Context(), filter)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := dto.ManagerListResponse{Managers: make([]dto.ManagerResponse, 0, len(managers)), Total: total}
	for i := range managers {
		resp.Managers = append(resp.Managers, dto.NewManagerResponse(&managers[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /api/managers/:email.
func (h *ManagerHandler) Delete(c *gin.Context) {
	email := c.Param("email")

	if err := h.facade.DeleteManager(c.Request.Context(), email); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidInput):
			c.Status(http.StatusForbidden)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
