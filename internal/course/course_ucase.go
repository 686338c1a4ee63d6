package course

import (
	"context"

	"github.com/gosimple/slug"
	"github.com/rajdevullash/lms-task-backend/internal/domain"
	"go.elastic.co/apm"
)

const thumbnailFolder = "course-thumbnails"

// CourseUseCaseImpl ...
type CourseUseCaseImpl struct {
	CourseRepository domain.CourseRepository
	UserRepository   domain.UserRepository
	MediaStore       domain.MediaStore
}

var _ domain.CourseUseCase = &CourseUseCaseImpl{}

// NewCourseUseCase ...
func NewCourseUseCase(
	CourseRepository domain.CourseRepository,
	UserRepository domain.UserRepository,
	MediaStore domain.MediaStore,
) *CourseUseCaseImpl {
	return &CourseUseCaseImpl{
		CourseRepository: CourseRepository,
		UserRepository:   UserRepository,
		MediaStore:       MediaStore,
	}
}

// CreateCourse create a course owned by userID. The thumbnail goes to the
// media host first and is removed again when the insert fails.
func (cu *CourseUseCaseImpl) CreateCourse(ctx context.Context, userID string, post *domain.CourseModel, thumbnail *domain.UploadFile) (*domain.CourseModel, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "CourseUseCaseImpl.CreateCourse", "service")
	defer apmSpan.End()

	owner, err := cu.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.NewNotFoundError("User not found")
	}
	if thumbnail == nil {
		return nil, domain.NewBadRequestError("Thumbnail is required")
	}

	asset, err := cu.MediaStore.Upload(ctx, thumbnailFolder, thumbnail)
	if err != nil {
		return nil, err
	}

	post.Slug = slug.Make(post.Title)
	post.Thumbnail = asset
	post.CreatedBy = userID
	if err := cu.CourseRepository.SaveCourse(ctx, post); err != nil {
		cu.MediaStore.Delete(ctx, asset.PublicID)
		return nil, err
	}
	return post, nil
}

// GetAllCourses list courses with search and pagination
func (cu *CourseUseCaseImpl) GetAllCourses(ctx context.Context, filter *domain.CourseFilter, page *domain.Pagination) ([]*domain.CourseModel, *domain.ListMeta, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "CourseUseCaseImpl.GetAllCourses", "service")
	defer apmSpan.End()

	page.Normalize()
	courses, total, err := cu.CourseRepository.FindCourses(ctx, filter, page)
	if err != nil {
		return nil, nil, err
	}
	return courses, &domain.ListMeta{Page: page.Page, Limit: page.Limit, Total: total}, nil
}

// GetCourseBySlug ...
func (cu *CourseUseCaseImpl) GetCourseBySlug(ctx context.Context, courseSlug string) (*domain.CourseModel, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "CourseUseCaseImpl.GetCourseBySlug", "service")
	defer apmSpan.End()

	course, err := cu.CourseRepository.FindBySlug(ctx, courseSlug)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, domain.NewNotFoundError("Course not found")
	}
	return course, nil
}

// UpdateCourse patch a course, a title change regenerates the slug and a new
// thumbnail replaces the hosted one
func (cu *CourseUseCaseImpl) UpdateCourse(ctx context.Context, courseSlug string, patch *domain.CourseModel, thumbnail *domain.UploadFile) (*domain.CourseModel, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "CourseUseCaseImpl.UpdateCourse", "service")
	defer apmSpan.End()

	existing, err := cu.CourseRepository.FindBySlug(ctx, courseSlug)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NewNotFoundError("Course not found")
	}

	if patch.Title != "" {
		existing.Title = patch.Title
		existing.Slug = slug.Make(patch.Title)
	}
	if patch.Description != "" {
		existing.Description = patch.Description
	}
	if patch.Price > 0 {
		existing.Price = patch.Price
	}
	if thumbnail != nil {
		asset, err := cu.MediaStore.Upload(ctx, thumbnailFolder, thumbnail)
		if err != nil {
			return nil, err
		}
		if existing.Thumbnail != nil {
			cu.MediaStore.Delete(ctx, existing.Thumbnail.PublicID)
		}
		existing.Thumbnail = asset
	}

	if err := cu.CourseRepository.UpdateCourse(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteCourse remove the course and its hosted thumbnail
func (cu *CourseUseCaseImpl) DeleteCourse(ctx context.Context, courseSlug string) error {
	apmSpan, ctx := apm.StartSpan(ctx, "CourseUseCaseImpl.DeleteCourse", "service")
	defer apmSpan.End()

	existing, err := cu.CourseRepository.FindBySlug(ctx, courseSlug)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.NewNotFoundError("Course not found")
	}
	if err := cu.CourseRepository.DeleteCourse(ctx, existing.ID); err != nil {
		return err
	}
	if existing.Thumbnail != nil {
		cu.MediaStore.Delete(ctx, existing.Thumbnail.PublicID)
	}
	return nil
}
