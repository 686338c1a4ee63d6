package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rajdevullash/lms-task-backend/internal/domain"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/validate"
)

// ModuleHandler course module management
type ModuleHandler struct {
	ModuleUseCase domain.CourseModuleUseCase
	Validator     validate.Validator
}

// NewModuleHandler ...
func NewModuleHandler(ModuleUseCase domain.CourseModuleUseCase, Validator validate.Validator) *ModuleHandler {
	return &ModuleHandler{
		ModuleUseCase: ModuleUseCase,
		Validator:     Validator,
	}
}

// HandleCreateModule ...
func (mh *ModuleHandler) HandleCreateModule(c echo.Context) error {
	post := new(domain.CourseModuleModel)
	if err := c.Bind(&post); err != nil {
		internal := err.(*echo.HTTPError).Internal
		return c.JSON(http.StatusUnprocessableEntity,
			NewRESTStandardError(http.StatusUnprocessableEntity, internal.Error()))
	}
	if err := mh.Validator.Struct(post); err != nil {
		return c.JSON(http.StatusBadRequest,
			NewRESTValidationError(http.StatusBadRequest, "Failed to validate fields", err))
	}

	created, err := mh.ModuleUseCase.CreateModule(c.Request().Context(), post)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// HandleGetCourseModules ...
func (mh *ModuleHandler) HandleGetCourseModules(c echo.Context) error {
	filter := &domain.CourseModuleFilter{SearchTerm: c.QueryParam("searchTerm")}
	modules, meta, err := mh.ModuleUseCase.GetCourseModules(c.Request().Context(), c.Param("courseId"), filter, bindPagination(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": modules, "meta": meta})
}

// HandleUpdateModule ...
func (mh *ModuleHandler) HandleUpdateModule(c echo.Context) error {
	patch := new(domain.CourseModuleModel)
	if err := c.Bind(&patch); err != nil {
		internal := err.(*echo.HTTPError).Internal
		return c.JSON(http.StatusUnprocessableEntity,
			NewRESTStandardError(http.StatusUnprocessableEntity, internal.Error()))
	}

	updated, err := mh.ModuleUseCase.UpdateModule(c.Request().Context(), c.Param("slug"), patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// HandleDeleteModule ...
func (mh *ModuleHandler) HandleDeleteModule(c echo.Context) error {
	if err := mh.ModuleUseCase.DeleteModule(c.Request().Context(), c.Param("slug")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
