package domain

import (
	"context"
	"time"
)

// LectureModel atomic content unit with a course-scoped sequence position.
// Order is 1-based, unique within the course and immutable once assigned.
type LectureModel struct {
	ID        string        `json:"id"`
	CourseID  string        `json:"course_id" validate:"required"`
	ModuleID  string        `json:"module_id" validate:"required"`
	Title     string        `json:"title" validate:"required"`
	Slug      string        `json:"slug"`
	Video     *MediaAsset   `json:"video"`
	PdfNotes  []*MediaAsset `json:"pdf_notes"`
	Order     int           `json:"order"`
	CreatedAt *time.Time    `json:"created_at"`
}

// LectureWithAccess lecture annotated with the caller's access state. Media
// fields are stripped whenever the entry is locked.
type LectureWithAccess struct {
	ID          string        `json:"id"`
	CourseID    string        `json:"course_id"`
	ModuleID    string        `json:"module_id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Order       int           `json:"order"`
	Video       *MediaAsset   `json:"video"`
	PdfNotes    []*MediaAsset `json:"pdf_notes"`
	IsLocked    bool          `json:"is_locked"`
	IsCompleted bool          `json:"is_completed"`
	IsCurrent   bool          `json:"is_current"`
	LockReason  string        `json:"lock_reason,omitempty"`
}

type LectureFilter struct {
	SearchTerm string
	CourseID   string
	ModuleID   string
}

type LectureRepository interface {
	SaveLecture(ctx context.Context, post *LectureModel) error
	FindByID(ctx context.Context, id string) (*LectureModel, error)
	FindBySlug(ctx context.Context, slug string) (*LectureModel, error)
	// FindByCourse returns the full course sequence ordered by ascending order.
	FindByCourse(ctx context.Context, courseID string) ([]*LectureModel, error)
	// MaxOrderByCourse returns the highest lecture_order in the course, 0
	// when the course has no lectures. Orders are never reused after a
	// delete, so appending uses max+1 rather than count+1.
	MaxOrderByCourse(ctx context.Context, courseID string) (int, error)
	FindLectures(ctx context.Context, filter *LectureFilter, page *Pagination) ([]*LectureModel, int, error)
	UpdateLecture(ctx context.Context, post *LectureModel) error
	DeleteLecture(ctx context.Context, id string) error
}

type LectureUseCase interface {
	CreateLecture(ctx context.Context, post *LectureModel, notes []*UploadFile) (*LectureModel, error)
	GetAllLectures(ctx context.Context, filter *LectureFilter, page *Pagination) ([]*LectureModel, *ListMeta, error)
	// GetLectureBySlug evaluates access for userID (empty means guest) and
	// returns a locked view when access is denied.
	GetLectureBySlug(ctx context.Context, slug string, userID string) (*LectureWithAccess, error)
	// ListWithAccess annotates every lecture of a course (optionally filtered
	// by module) with the caller's access state.
	ListWithAccess(ctx context.Context, userID, courseID, moduleID string) ([]*LectureWithAccess, error)
	UpdateLecture(ctx context.Context, slug string, patch *LectureModel, notes []*UploadFile) (*LectureModel, error)
	DeleteLecture(ctx context.Context, slug string) error
}
