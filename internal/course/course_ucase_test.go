package course

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rajdevullash/lms-task-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCourseRepo struct {
	courses map[string]*domain.CourseModel
	saveErr error
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[string]*domain.CourseModel)}
}

func (r *fakeCourseRepo) SaveCourse(ctx context.Context, post *domain.CourseModel) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	post.ID = fmt.Sprintf("course-%d", len(r.courses)+1)
	r.courses[post.ID] = post
	return nil
}

func (r *fakeCourseRepo) FindByID(ctx context.Context, id string) (*domain.CourseModel, error) {
	return r.courses[id], nil
}

func (r *fakeCourseRepo) FindBySlug(ctx context.Context, slug string) (*domain.CourseModel, error) {
	for _, c := range r.courses {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCourseRepo) FindCourses(ctx context.Context, filter *domain.CourseFilter, page *domain.Pagination) ([]*domain.CourseModel, int, error) {
	var result []*domain.CourseModel
	for _, c := range r.courses {
		result = append(result, c)
	}
	return result, len(result), nil
}

func (r *fakeCourseRepo) UpdateCourse(ctx context.Context, post *domain.CourseModel) error {
	r.courses[post.ID] = post
	return nil
}

func (r *fakeCourseRepo) DeleteCourse(ctx context.Context, id string) error {
	delete(r.courses, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]*domain.UserModel
}

func (r *fakeUserRepo) FindByCredential(ctx context.Context, post *domain.UserModel) (*domain.UserModel, error) {
	return nil, nil
}
func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.UserModel, error) {
	return r.users[id], nil
}
func (r *fakeUserRepo) SaveUser(ctx context.Context, post *domain.UserModel) error { return nil }
func (r *fakeUserRepo) UpdateLogin(ctx context.Context, post *domain.UserModel) error { return nil }

type fakeMediaStore struct {
	uploads int
	deleted []string
}

func (s *fakeMediaStore) Upload(ctx context.Context, folder string, file *domain.UploadFile) (*domain.MediaAsset, error) {
	s.uploads++
	id := fmt.Sprintf("%s/asset-%d", folder, s.uploads)
	return &domain.MediaAsset{PublicID: id, URL: "https://media.test/" + id}, nil
}

func (s *fakeMediaStore) Delete(ctx context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return nil
}

func newCourseFixture() (*CourseUseCaseImpl, *fakeCourseRepo, *fakeMediaStore) {
	repo := newFakeCourseRepo()
	media := &fakeMediaStore{}
	uc := NewCourseUseCase(repo, &fakeUserRepo{users: map[string]*domain.UserModel{
		"admin-1": {ID: "admin-1", Role: domain.RoleAdmin},
	}}, media)
	return uc, repo, media
}

func TestCreateCourse_SlugAndThumbnail(t *testing.T) {
	uc, _, media := newCourseFixture()

	created, err := uc.CreateCourse(context.Background(), "admin-1", &domain.CourseModel{
		Title: "Go From Scratch",
		Price: 49.9,
	}, &domain.UploadFile{Name: "cover.png", Content: []byte("png")})
	require.NoError(t, err)

	assert.Equal(t, "go-from-scratch", created.Slug)
	assert.Equal(t, "admin-1", created.CreatedBy)
	require.NotNil(t, created.Thumbnail)
	assert.Equal(t, 1, media.uploads)
}

func TestCreateCourse_UnknownUser(t *testing.T) {
	uc, _, _ := newCourseFixture()

	_, err := uc.CreateCourse(context.Background(), "ghost", &domain.CourseModel{Title: "X"},
		&domain.UploadFile{Name: "cover.png"})
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestCreateCourse_RollsBackThumbnail(t *testing.T) {
	uc, repo, media := newCourseFixture()
	repo.saveErr = errors.New("insert failed")

	_, err := uc.CreateCourse(context.Background(), "admin-1", &domain.CourseModel{Title: "Doomed"},
		&domain.UploadFile{Name: "cover.png"})
	require.Error(t, err)
	assert.Len(t, media.deleted, 1, "thumbnail must be cleaned up")
}

func TestUpdateCourse_ReplacesThumbnail(t *testing.T) {
	uc, _, media := newCourseFixture()
	ctx := context.Background()

	created, err := uc.CreateCourse(ctx, "admin-1", &domain.CourseModel{Title: "Original"},
		&domain.UploadFile{Name: "old.png"})
	require.NoError(t, err)
	oldID := created.Thumbnail.PublicID

	updated, err := uc.UpdateCourse(ctx, created.Slug, &domain.CourseModel{Title: "Renamed"},
		&domain.UploadFile{Name: "new.png"})
	require.NoError(t, err)

	assert.Equal(t, "renamed", updated.Slug)
	assert.NotEqual(t, oldID, updated.Thumbnail.PublicID)
	assert.Contains(t, media.deleted, oldID)
}

func TestDeleteCourse_RemovesThumbnail(t *testing.T) {
	uc, repo, media := newCourseFixture()
	ctx := context.Background()

	created, err := uc.CreateCourse(ctx, "admin-1", &domain.CourseModel{Title: "Short Lived"},
		&domain.UploadFile{Name: "cover.png"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteCourse(ctx, created.Slug))
	assert.Empty(t, repo.courses)
	assert.Contains(t, media.deleted, created.Thumbnail.PublicID)
}

func TestGetCourseBySlug_Unknown(t *testing.T) {
	uc, _, _ := newCourseFixture()

	_, err := uc.GetCourseBySlug(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
