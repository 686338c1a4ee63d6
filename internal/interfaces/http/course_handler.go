package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rajdevullash/lms-task-backend/internal/domain"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/auth"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/validate"
)

// CourseHandler course management, create/update/delete sit behind the admin
// guard
type CourseHandler struct {
	CourseUseCase domain.CourseUseCase
	JWTUtil       *auth.JWTUtil
	Validator     validate.Validator
	MaxUploadSize int64
}

// NewCourseHandler ...
func NewCourseHandler(CourseUseCase domain.CourseUseCase, JWTUtil *auth.JWTUtil, Validator validate.Validator, MaxUploadSize int64) *CourseHandler {
	return &CourseHandler{
		CourseUseCase: CourseUseCase,
		JWTUtil:       JWTUtil,
		Validator:     Validator,
		MaxUploadSize: MaxUploadSize,
	}
}

// HandleCreateCourse multipart body with a thumbnail file
func (ch *CourseHandler) HandleCreateCourse(c echo.Context) error {
	post := new(domain.CourseModel)
	post.Title = c.FormValue("title")
	post.Description = c.FormValue("description")
	if price := c.FormValue("price"); price != "" {
		parsed, err := strconv.ParseFloat(price, 64)
		if err != nil {
			return writeError(c, domain.NewBadRequestError("Price must be a number"))
		}
		post.Price = parsed
	}

	if err := ch.Validator.Struct(post); err != nil {
		return c.JSON(http.StatusBadRequest,
			NewRESTValidationError(http.StatusBadRequest, "Failed to validate fields", err))
	}

	thumbnail, err := formFile(c, "thumbnail", ch.MaxUploadSize)
	if err != nil {
		return writeError(c, err)
	}

	created, err := ch.CourseUseCase.CreateCourse(c.Request().Context(), currentUserID(c, ch.JWTUtil), post, thumbnail)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// HandleGetAllCourses ...
func (ch *CourseHandler) HandleGetAllCourses(c echo.Context) error {
	filter := &domain.CourseFilter{SearchTerm: c.QueryParam("searchTerm")}
	courses, meta, err := ch.CourseUseCase.GetAllCourses(c.Request().Context(), filter, bindPagination(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": courses, "meta": meta})
}

// HandleGetCourseBySlug ...
func (ch *CourseHandler) HandleGetCourseBySlug(c echo.Context) error {
	course, err := ch.CourseUseCase.GetCourseBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, course)
}

// HandleUpdateCourse ...
func (ch *CourseHandler) HandleUpdateCourse(c echo.Context) error {
	patch := new(domain.CourseModel)
	patch.Title = c.FormValue("title")
	patch.Description = c.FormValue("description")
	if price := c.FormValue("price"); price != "" {
		parsed, err := strconv.ParseFloat(price, 64)
		if err != nil {
			return writeError(c, domain.NewBadRequestError("Price must be a number"))
		}
		patch.Price = parsed
	}

	thumbnail, err := formFile(c, "thumbnail", ch.MaxUploadSize)
	if err != nil {
		return writeError(c, err)
	}

	updated, err := ch.CourseUseCase.UpdateCourse(c.Request().Context(), c.Param("slug"), patch, thumbnail)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// HandleDeleteCourse ...
func (ch *CourseHandler) HandleDeleteCourse(c echo.Context) error {
	if err := ch.CourseUseCase.DeleteCourse(c.Request().Context(), c.Param("slug")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
