package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rajdevullash/lms-task-backend/internal/domain"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/auth"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/validate"
)

// LectureHandler lecture management and the user facing lecture views. The
// user facing routes run behind optional auth, guests get locked entries.
type LectureHandler struct {
	LectureUseCase domain.LectureUseCase
	JWTUtil        *auth.JWTUtil
	Validator      validate.Validator
	MaxUploadSize  int64
}

// NewLectureHandler ...
func NewLectureHandler(LectureUseCase domain.LectureUseCase, JWTUtil *auth.JWTUtil, Validator validate.Validator, MaxUploadSize int64) *LectureHandler {
	return &LectureHandler{
		LectureUseCase: LectureUseCase,
		JWTUtil:        JWTUtil,
		Validator:      Validator,
		MaxUploadSize:  MaxUploadSize,
	}
}

// HandleCreateLecture multipart body, pdf notes arrive as repeated pdfNotes
// fields
func (lh *LectureHandler) HandleCreateLecture(c echo.Context) error {
	post := new(domain.LectureModel)
	post.Title = c.FormValue("title")
	post.CourseID = c.FormValue("course_id")
	post.ModuleID = c.FormValue("module_id")
	if videoURL := c.FormValue("video_url"); videoURL != "" {
		post.Video = &domain.MediaAsset{URL: videoURL}
	}

	if err := lh.Validator.Struct(post); err != nil {
		return c.JSON(http.StatusBadRequest,
			NewRESTValidationError(http.StatusBadRequest, "Failed to validate fields", err))
	}

	notes, err := formFiles(c, "pdfNotes", lh.MaxUploadSize)
	if err != nil {
		return writeError(c, err)
	}

	created, err := lh.LectureUseCase.CreateLecture(c.Request().Context(), post, notes)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// HandleGetAllLectures admin listing with course/module/search filters
func (lh *LectureHandler) HandleGetAllLectures(c echo.Context) error {
	filter := &domain.LectureFilter{
		SearchTerm: c.QueryParam("searchTerm"),
		CourseID:   c.QueryParam("courseId"),
		ModuleID:   c.QueryParam("moduleId"),
	}
	lectures, meta, err := lh.LectureUseCase.GetAllLectures(c.Request().Context(), filter, bindPagination(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": lectures, "meta": meta})
}

// HandleGetLectureBySlug single lecture with the caller's access state
func (lh *LectureHandler) HandleGetLectureBySlug(c echo.Context) error {
	view, err := lh.LectureUseCase.GetLectureBySlug(c.Request().Context(), c.Param("slug"), currentUserID(c, lh.JWTUtil))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// HandleListWithAccess every lecture of a course annotated for the caller
func (lh *LectureHandler) HandleListWithAccess(c echo.Context) error {
	views, err := lh.LectureUseCase.ListWithAccess(c.Request().Context(),
		currentUserID(c, lh.JWTUtil), c.QueryParam("courseId"), c.QueryParam("moduleId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

// HandleUpdateLecture ...
func (lh *LectureHandler) HandleUpdateLecture(c echo.Context) error {
	patch := new(domain.LectureModel)
	patch.Title = c.FormValue("title")
	if videoURL := c.FormValue("video_url"); videoURL != "" {
		patch.Video = &domain.MediaAsset{URL: videoURL}
	}

	notes, err := formFiles(c, "pdfNotes", lh.MaxUploadSize)
	if err != nil {
		return writeError(c, err)
	}

	updated, err := lh.LectureUseCase.UpdateLecture(c.Request().Context(), c.Param("slug"), patch, notes)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// HandleDeleteLecture ...
func (lh *LectureHandler) HandleDeleteLecture(c echo.Context) error {
	if err := lh.LectureUseCase.DeleteLecture(c.Request().Context(), c.Param("slug")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
