package domain

import (
	"context"
	"time"
)

// CourseModuleModel ordered grouping of lectures inside a course
type CourseModuleModel struct {
	ID           string     `json:"id"`
	CourseID     string     `json:"course_id" validate:"required"`
	Title        string     `json:"title" validate:"required"`
	Slug         string     `json:"slug"`
	ModuleNumber int        `json:"module_number"`
	CreatedAt    *time.Time `json:"created_at"`
}

type CourseModuleFilter struct {
	SearchTerm string
}

type CourseModuleRepository interface {
	SaveModule(ctx context.Context, post *CourseModuleModel) error
	FindByID(ctx context.Context, id string) (*CourseModuleModel, error)
	FindBySlug(ctx context.Context, slug string) (*CourseModuleModel, error)
	FindModules(ctx context.Context, courseID string, filter *CourseModuleFilter, page *Pagination) ([]*CourseModuleModel, int, error)
	CountByCourse(ctx context.Context, courseID string) (int, error)
	UpdateModule(ctx context.Context, post *CourseModuleModel) error
	DeleteModule(ctx context.Context, id string) error
}

type CourseModuleUseCase interface {
	CreateModule(ctx context.Context, post *CourseModuleModel) (*CourseModuleModel, error)
	GetCourseModules(ctx context.Context, courseID string, filter *CourseModuleFilter, page *Pagination) ([]*CourseModuleModel, *ListMeta, error)
	UpdateModule(ctx context.Context, slug string, patch *CourseModuleModel) (*CourseModuleModel, error)
	DeleteModule(ctx context.Context, slug string) error
}
