package coursemodule

import (
	"context"
	"fmt"
	"testing"

	"github.com/rajdevullash/lms-task-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModuleRepo struct {
	modules []*domain.CourseModuleModel
}

func (r *fakeModuleRepo) SaveModule(ctx context.Context, post *domain.CourseModuleModel) error {
	post.ID = fmt.Sprintf("mod-%d", len(r.modules)+1)
	r.modules = append(r.modules, post)
	return nil
}

func (r *fakeModuleRepo) FindByID(ctx context.Context, id string) (*domain.CourseModuleModel, error) {
	for _, m := range r.modules {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeModuleRepo) FindBySlug(ctx context.Context, slug string) (*domain.CourseModuleModel, error) {
	for _, m := range r.modules {
		if m.Slug == slug {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeModuleRepo) FindModules(ctx context.Context, courseID string, filter *domain.CourseModuleFilter, page *domain.Pagination) ([]*domain.CourseModuleModel, int, error) {
	return r.modules, len(r.modules), nil
}

func (r *fakeModuleRepo) CountByCourse(ctx context.Context, courseID string) (int, error) {
	count := 0
	for _, m := range r.modules {
		if m.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

func (r *fakeModuleRepo) UpdateModule(ctx context.Context, post *domain.CourseModuleModel) error {
	return nil
}

func (r *fakeModuleRepo) DeleteModule(ctx context.Context, id string) error {
	return nil
}

type fakeCourseRepo struct {
	courses map[string]*domain.CourseModel
}

func (r *fakeCourseRepo) SaveCourse(ctx context.Context, post *domain.CourseModel) error { return nil }
func (r *fakeCourseRepo) FindByID(ctx context.Context, id string) (*domain.CourseModel, error) {
	return r.courses[id], nil
}
func (r *fakeCourseRepo) FindBySlug(ctx context.Context, slug string) (*domain.CourseModel, error) {
	return nil, nil
}
func (r *fakeCourseRepo) FindCourses(ctx context.Context, filter *domain.CourseFilter, page *domain.Pagination) ([]*domain.CourseModel, int, error) {
	return nil, 0, nil
}
func (r *fakeCourseRepo) UpdateCourse(ctx context.Context, post *domain.CourseModel) error {
	return nil
}
func (r *fakeCourseRepo) DeleteCourse(ctx context.Context, id string) error { return nil }

func newModuleFixture() (*CourseModuleUseCaseImpl, *fakeModuleRepo) {
	repo := &fakeModuleRepo{}
	uc := NewCourseModuleUseCase(repo, &fakeCourseRepo{courses: map[string]*domain.CourseModel{
		"course-1": {ID: "course-1", Title: "Course One"},
	}})
	return uc, repo
}

func TestCreateModule_SequentialNumbers(t *testing.T) {
	uc, _ := newModuleFixture()
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		created, err := uc.CreateModule(ctx, &domain.CourseModuleModel{
			CourseID: "course-1",
			Title:    fmt.Sprintf("Chapter %d", want),
		})
		require.NoError(t, err)
		assert.Equal(t, want, created.ModuleNumber)
		assert.Equal(t, fmt.Sprintf("chapter-%d", want), created.Slug)
	}
}

func TestCreateModule_UnknownCourse(t *testing.T) {
	uc, _ := newModuleFixture()

	_, err := uc.CreateModule(context.Background(), &domain.CourseModuleModel{
		CourseID: "missing",
		Title:    "Orphan",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestUpdateModule_KeepsNumber(t *testing.T) {
	uc, _ := newModuleFixture()
	ctx := context.Background()

	created, err := uc.CreateModule(ctx, &domain.CourseModuleModel{
		CourseID: "course-1",
		Title:    "Basics",
	})
	require.NoError(t, err)

	updated, err := uc.UpdateModule(ctx, created.Slug, &domain.CourseModuleModel{Title: "Fundamentals"})
	require.NoError(t, err)
	assert.Equal(t, "fundamentals", updated.Slug)
	assert.Equal(t, created.ModuleNumber, updated.ModuleNumber)
}

func TestDeleteModule_Unknown(t *testing.T) {
	uc, _ := newModuleFixture()

	err := uc.DeleteModule(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
