package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"magicstore/internal/errors"
	"magicstore/internal/model"
	"magicstore/internal/service"
)

// CatalogHandler handles course listing and admin CRUD endpoints.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CourseRequest carries the admin course form. Prices travel as strings and
// are parsed to decimals; an empty original price means no discount shown.
type CourseRequest struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Price         string   `json:"price" validate:"required"`
	OriginalPrice string   `json:"originalPrice"`
	Category      string   `json:"category" validate:"required,oneof=mentalism hypnosis magic live workshop bundle"`
	Image         string   `json:"image" validate:"required"`
	Features      []string `json:"features"`
}

// CourseResponse wraps a mutated course in the success body.
type CourseResponse struct {
	Success bool          `json:"success"`
	Course  *model.Course `json:"course,omitempty"`
	Message string        `json:"message,omitempty"`
}

func (r *CourseRequest) toInput() (service.CourseInput, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return service.CourseInput{}, err
	}

	var originalPrice decimal.NullDecimal
	if r.OriginalPrice != "" {
		op, err := decimal.NewFromString(r.OriginalPrice)
		if err != nil {
			return service.CourseInput{}, err
		}
		originalPrice = decimal.NewNullDecimal(op)
	}

	return service.CourseInput{
		Title:         r.Title,
		Description:   r.Description,
		Price:         price,
		OriginalPrice: originalPrice,
		Category:      model.CourseCategory(r.Category),
		Image:         r.Image,
		Features:      r.Features,
	}, nil
}

// ListCourses godoc
// @Summary List the catalog
// @Tags courses
// @Produce json
// @Success 200 {array} model.Course
// @Failure 500 {object} errors.ErrorResponse
// @Router /courses [get]
func (h *CatalogHandler) ListCourses(c echo.Context) error {
	courses, err := h.catalogService.ListCourses(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, courses)
}

// GetCourse godoc
// @Summary Get one course
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} model.Course
// @Failure 404 {object} errors.ErrorResponse
// @Router /courses/{id} [get]
func (h *CatalogHandler) GetCourse(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid course id",
			Code:  "INVALID_UUID",
		})
	}

	course, err := h.catalogService.GetCourse(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, course)
}

// CreateCourse godoc
// @Summary Create a course
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CourseRequest true "Course data"
// @Success 200 {object} CourseResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /courses [post]
func (h *CatalogHandler) CreateCourse(c echo.Context) error {
	input, httpErr := h.bindCourse(c)
	if httpErr != nil {
		return httpErr
	}

	course, err := h.catalogService.CreateCourse(c.Request().Context(), *input)
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, CourseResponse{Success: true, Course: course})
}

// UpdateCourse godoc
// @Summary Update a course
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body CourseRequest true "Course data"
// @Success 200 {object} CourseResponse
// @Failure 404 {object} CourseResponse
// @Router /courses/{id} [put]
func (h *CatalogHandler) UpdateCourse(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid course id",
			Code:  "INVALID_UUID",
		})
	}

	input, httpErr := h.bindCourse(c)
	if httpErr != nil {
		return httpErr
	}

	course, err := h.catalogService.UpdateCourse(c.Request().Context(), id, *input)
	if err != nil {
		if err == errors.ErrCourseNotFound {
			return c.JSON(http.StatusNotFound, CourseResponse{Success: false, Message: "Course not found"})
		}
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, CourseResponse{Success: true, Course: course})
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags admin
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} CourseResponse
// @Failure 404 {object} CourseResponse
// @Router /courses/{id} [delete]
func (h *CatalogHandler) DeleteCourse(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid course id",
			Code:  "INVALID_UUID",
		})
	}

	if err := h.catalogService.DeleteCourse(c.Request().Context(), id); err != nil {
		if err == errors.ErrCourseNotFound {
			return c.JSON(http.StatusNotFound, CourseResponse{Success: false, Message: "Course not found"})
		}
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, CourseResponse{Success: true})
}

func (h *CatalogHandler) bindCourse(c echo.Context) (*service.CourseInput, error) {
	var req CourseRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input, err := req.toInput()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid price",
			Code:  "INVALID_PRICE",
		})
	}
	return &input, nil
}
