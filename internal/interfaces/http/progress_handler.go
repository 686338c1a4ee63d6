package http

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rajdevullash/lms-task-backend/internal/domain"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/auth"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/validate"
	"github.com/rajdevullash/lms-task-backend/internal/progress"
)

// ProgressHandler progress tracking and lecture gating
type ProgressHandler struct {
	ProgressUseCase domain.ProgressUseCase
	JWTUtil         *auth.JWTUtil
	Validator       validate.Validator
}

// NewProgressHandler ...
func NewProgressHandler(ProgressUseCase domain.ProgressUseCase, JWTUtil *auth.JWTUtil, Validator validate.Validator) *ProgressHandler {
	return &ProgressHandler{
		ProgressUseCase: ProgressUseCase,
		JWTUtil:         JWTUtil,
		Validator:       Validator,
	}
}

type progressPost struct {
	CourseID  string `json:"courseId" validate:"required"`
	LectureID string `json:"lectureId" validate:"required"`
}

// HandleCheckLectureAccess evaluate the gating rule for one lecture. Guests
// get a denial payload, not a 401.
func (ph *ProgressHandler) HandleCheckLectureAccess(c echo.Context) error {
	decision, err := ph.ProgressUseCase.CheckLectureAccess(c.Request().Context(),
		currentUserID(c, ph.JWTUtil), c.Param("courseId"), c.Param("lectureId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, decision)
}

// HandleGetCourseProgress progress record for the caller in one course,
// created on first read
func (ph *ProgressHandler) HandleGetCourseProgress(c echo.Context) error {
	record, err := ph.ProgressUseCase.GetCourseProgress(c.Request().Context(),
		currentUserID(c, ph.JWTUtil), c.Param("courseId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

// HandleGetUserProgress every progress record of the caller
func (ph *ProgressHandler) HandleGetUserProgress(c echo.Context) error {
	records, err := ph.ProgressUseCase.GetUserProgress(c.Request().Context(), currentUserID(c, ph.JWTUtil))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, records)
}

// HandleMarkLectureComplete record a completion event
func (ph *ProgressHandler) HandleMarkLectureComplete(c echo.Context) error {
	post := new(progressPost)
	if err := c.Bind(&post); err != nil {
		internal := err.(*echo.HTTPError).Internal
		return c.JSON(http.StatusUnprocessableEntity,
			NewRESTStandardError(http.StatusUnprocessableEntity, internal.Error()))
	}
	if err := ph.Validator.Struct(post); err != nil {
		return c.JSON(http.StatusBadRequest,
			NewRESTValidationError(http.StatusBadRequest, "Failed to validate fields", err))
	}

	result, err := ph.ProgressUseCase.MarkLectureComplete(c.Request().Context(),
		currentUserID(c, ph.JWTUtil), post.CourseID, post.LectureID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// HandleUpdateCurrentLecture move the caller's position marker
func (ph *ProgressHandler) HandleUpdateCurrentLecture(c echo.Context) error {
	post := new(progressPost)
	if err := c.Bind(&post); err != nil {
		internal := err.(*echo.HTTPError).Internal
		return c.JSON(http.StatusUnprocessableEntity,
			NewRESTStandardError(http.StatusUnprocessableEntity, internal.Error()))
	}
	if err := ph.Validator.Struct(post); err != nil {
		return c.JSON(http.StatusBadRequest,
			NewRESTValidationError(http.StatusBadRequest, "Failed to validate fields", err))
	}

	record, err := ph.ProgressUseCase.UpdateCurrentLecture(c.Request().Context(),
		currentUserID(c, ph.JWTUtil), post.CourseID, post.LectureID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

// HandleProgressSocket serve live progress lookups over a websocket. The
// client sends {"courseId": ...} frames, each one is answered with the
// current record for that course.
func (ph *ProgressHandler) HandleProgressSocket(c echo.Context, conn *websocket.Conn) error {
	userID := currentUserID(c, ph.JWTUtil)
	if userID == "" {
		// close the guest session before any repository access
		return conn.WriteJSON(echo.Map{"error": progress.ReasonAuthRequired})
	}
	req := new(progressPost)
	if err := conn.ReadJSON(req); err != nil {
		return err
	}
	// the request context dies with the upgrade handler
	record, err := ph.ProgressUseCase.GetCourseProgress(context.Background(),
		userID, req.CourseID)
	if err != nil {
		return conn.WriteJSON(echo.Map{"error": err.Error()})
	}
	return conn.WriteJSON(record)
}
