package domain

import (
	"context"
	"time"
)

type CourseModel struct {
	ID          string      `json:"id"`
	Title       string      `json:"title" validate:"required"`
	Slug        string      `json:"slug"`
	Description string      `json:"description"`
	Price       float64     `json:"price" validate:"min=0"`
	Thumbnail   *MediaAsset `json:"thumbnail"`
	CreatedBy   string      `json:"created_by"`
	CreatedAt   *time.Time  `json:"created_at"`
}

// CourseFilter list filtering options
type CourseFilter struct {
	SearchTerm string
}

type CourseRepository interface {
	SaveCourse(ctx context.Context, post *CourseModel) error
	FindByID(ctx context.Context, id string) (*CourseModel, error)
	FindBySlug(ctx context.Context, slug string) (*CourseModel, error)
	FindCourses(ctx context.Context, filter *CourseFilter, page *Pagination) ([]*CourseModel, int, error)
	UpdateCourse(ctx context.Context, post *CourseModel) error
	DeleteCourse(ctx context.Context, id string) error
}

type CourseUseCase interface {
	CreateCourse(ctx context.Context, userID string, post *CourseModel, thumbnail *UploadFile) (*CourseModel, error)
	GetAllCourses(ctx context.Context, filter *CourseFilter, page *Pagination) ([]*CourseModel, *ListMeta, error)
	GetCourseBySlug(ctx context.Context, slug string) (*CourseModel, error)
	UpdateCourse(ctx context.Context, slug string, patch *CourseModel, thumbnail *UploadFile) (*CourseModel, error)
	DeleteCourse(ctx context.Context, slug string) error
}
