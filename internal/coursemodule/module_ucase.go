package coursemodule

import (
	"context"

	"github.com/gosimple/slug"
	"github.com/rajdevullash/lms-task-backend/internal/domain"
	"go.elastic.co/apm"
)

// CourseModuleUseCaseImpl ...
type CourseModuleUseCaseImpl struct {
	ModuleRepository domain.CourseModuleRepository
	CourseRepository domain.CourseRepository
}

var _ domain.CourseModuleUseCase = &CourseModuleUseCaseImpl{}

// NewCourseModuleUseCase ...
func NewCourseModuleUseCase(
	ModuleRepository domain.CourseModuleRepository,
	CourseRepository domain.CourseRepository,
) *CourseModuleUseCaseImpl {
	return &CourseModuleUseCaseImpl{
		ModuleRepository: ModuleRepository,
		CourseRepository: CourseRepository,
	}
}

// CreateModule append a module to the course, module numbers start at 1
func (mu *CourseModuleUseCaseImpl) CreateModule(ctx context.Context, post *domain.CourseModuleModel) (*domain.CourseModuleModel, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "CourseModuleUseCaseImpl.CreateModule", "service")
	defer apmSpan.End()

	course, err := mu.CourseRepository.FindByID(ctx, post.CourseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, domain.NewNotFoundError("Course not found")
	}

	count, err := mu.ModuleRepository.CountByCourse(ctx, post.CourseID)
	if err != nil {
		return nil, err
	}
	post.ModuleNumber = count + 1
	post.Slug = slug.Make(post.Title)

	if err := mu.ModuleRepository.SaveModule(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetCourseModules list the modules of a course in module number order
func (mu *CourseModuleUseCaseImpl) GetCourseModules(ctx context.Context, courseID string, filter *domain.CourseModuleFilter, page *domain.Pagination) ([]*domain.CourseModuleModel, *domain.ListMeta, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "CourseModuleUseCaseImpl.GetCourseModules", "service")
	defer apmSpan.End()

	if courseID == "" {
		return nil, nil, domain.NewBadRequestError("Course ID is required")
	}

	page.Normalize()
	modules, total, err := mu.ModuleRepository.FindModules(ctx, courseID, filter, page)
	if err != nil {
		return nil, nil, err
	}
	return modules, &domain.ListMeta{Page: page.Page, Limit: page.Limit, Total: total}, nil
}

// UpdateModule retitle a module, the module number never changes
func (mu *CourseModuleUseCaseImpl) UpdateModule(ctx context.Context, moduleSlug string, patch *domain.CourseModuleModel) (*domain.CourseModuleModel, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "CourseModuleUseCaseImpl.UpdateModule", "service")
	defer apmSpan.End()

	existing, err := mu.ModuleRepository.FindBySlug(ctx, moduleSlug)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NewNotFoundError("Module not found")
	}

	if patch.Title != "" {
		existing.Title = patch.Title
		existing.Slug = slug.Make(patch.Title)
	}

	if err := mu.ModuleRepository.UpdateModule(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteModule ...
func (mu *CourseModuleUseCaseImpl) DeleteModule(ctx context.Context, moduleSlug string) error {
	apmSpan, ctx := apm.StartSpan(ctx, "CourseModuleUseCaseImpl.DeleteModule", "service")
	defer apmSpan.End()

	existing, err := mu.ModuleRepository.FindBySlug(ctx, moduleSlug)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.NewNotFoundError("Module not found")
	}
	return mu.ModuleRepository.DeleteModule(ctx, existing.ID)
}
