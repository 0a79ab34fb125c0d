package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ventry/ventry/internal/domain/errors"
	"github.com/ventry/ventry/internal/domain/model"
	"github.com/ventry/ventry/internal/domain/repository"
	"github.com/ventry/ventry/internal/server/http/dto"
	"github.com/ventry/ventry/internal/usecase"
)

// CarHandler processes inventory operations.
type CarHandler struct {
	facade CarFacade
}

// NewCarHandler creates CarHandler instance.
func NewCarHandler(facade CarFacade) *CarHandler {
	return &CarHandler{facade: facade}
}

// Create handles POST /api/cars.
func (h *CarHandler) Create(c *gin.Context) {
	var req dto.CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	car, err := h.facade.CreateCar(c.Request.Context(), usecase.CarInput{
		Brand:        req.Brand,
		Model:        req.Model,
		Price:        req.Price,
		CategoryID:   req.CategoryID,
		Year:         req.Year,
		Mileage:      req.Mileage,
		FuelType:     model.FuelType(req.FuelType),
		Transmission: model.Transmission(req.Transmission),
		Color:        req.Color,
		Photos:       req.Photos,
	})
	if err != nil {
		writeCarError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewCarResponse(car))
}

// Get handles GET /api/cars/:id.
func (h *CarHandler) Get(c *gin.Context) {
	car, err := h.facade.Car(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeCarError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCarResponse(car))
}

// List handles GET /api/cars with filters from the query string.
func (h *CarHandler) List(c *gin.Context) {
	filter := model.CarFilter{
		Brand:        c.Query("brand"),
		Model:        c.Query("model"),
		MinPrice:     queryFloatPtr(c, "minPrice"),
		MaxPrice:     queryFloatPtr(c, "maxPrice"),
		IsAvailable:  queryBoolPtr(c, "isAvailable"),
		CategoryID:   c.Query("categoryId"),
		MinYear:      queryIntPtr(c, "minYear"),
		MaxYear:      queryIntPtr(c, "maxYear"),
		FuelType:     c.Query("fuelType"),
		Transmission: c.Query("transmission"),
		Color:        c.Query("color"),
		Search:       c.Query("search"),
		Page:         queryInt(c, "page"),
		Limit:        queryInt(c, "limit"),
		Sort:         c.Query("sort"),
	}

	cars, total, err := h.facade.Cars(c.Request.Context(), filter)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := dto.CarListResponse{Cars: make([]dto.CarResponse, 0, len(cars)), Total: total}
	for i := range cars {
		resp.Cars = append(resp.Cars, dto.NewCarResponse(&cars[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Update handles PATCH /api/cars/:id.
func (h *CarHandler) Update(c *gin.Context) {
	var req dto.UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	car, err := h.facade.UpdateCar(c.Request.Context(), c.Param("id"), repository.CarUpdate{
		Brand:        req.Brand,
		Model:        req.Model,
		Price:        req.Price,
		IsAvailable:  req.IsAvailable,
		CategoryID:   req.CategoryID,
		Year:         req.Year,
		Mileage:      req.Mileage,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		Color:        req.Color,
	})
	if err != nil {
		writeCarError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCarResponse(car))
}

// Delete handles DELETE /api/cars/:id.
func (h *CarHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteCar(c.Request.Context(), c.Param("id")); err != nil {
		writeCarError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddPhotos handles POST /api/cars/:id/photos.
func (h *CarHandler) AddPhotos(c *gin.Context) {
	var req dto.CarPhotosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	car, err := h.facade.AddCarPhotos(c.Request.Context(), c.Param("id"), req.Photos)
	if err != nil {
		writeCarError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCarResponse(car))
}

// RemovePhoto handles DELETE /api/cars/:id/photos. The URL to drop comes in
// the query string since photo URLs do not survive as path segments.
func (h *CarHandler) RemovePhoto(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	car, err := h.facade.RemoveCarPhoto(c.Request.Context(), c.Param("id"), url)
	if err != nil {
		writeCarError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCarResponse(car))
}

func writeCarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidInput):
		c.Status(http.StatusBadRequest)
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	default:
		c.Status(http.StatusInternalServerError)
	}
}
