package lecture

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rajdevullash/lms-task-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLectureRepo struct {
	lectures []*domain.LectureModel
	saveErr  error
}

func (r *fakeLectureRepo) SaveLecture(ctx context.Context, post *domain.LectureModel) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	post.ID = fmt.Sprintf("lec-%d", len(r.lectures)+1)
	r.lectures = append(r.lectures, post)
	return nil
}

func (r *fakeLectureRepo) FindByID(ctx context.Context, id string) (*domain.LectureModel, error) {
	for _, l := range r.lectures {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (r *fakeLectureRepo) FindBySlug(ctx context.Context, slug string) (*domain.LectureModel, error) {
	for _, l := range r.lectures {
		if l.Slug == slug {
			return l, nil
		}
	}
	return nil, nil
}

func (r *fakeLectureRepo) FindByCourse(ctx context.Context, courseID string) ([]*domain.LectureModel, error) {
	var seq []*domain.LectureModel
	for _, l := range r.lectures {
		if l.CourseID == courseID {
			seq = append(seq, l)
		}
	}
	return seq, nil
}

func (r *fakeLectureRepo) MaxOrderByCourse(ctx context.Context, courseID string) (int, error) {
	seq, _ := r.FindByCourse(ctx, courseID)
	max := 0
	for _, l := range seq {
		if l.Order > max {
			max = l.Order
		}
	}
	return max, nil
}

func (r *fakeLectureRepo) FindLectures(ctx context.Context, filter *domain.LectureFilter, page *domain.Pagination) ([]*domain.LectureModel, int, error) {
	return r.lectures, len(r.lectures), nil
}

func (r *fakeLectureRepo) UpdateLecture(ctx context.Context, post *domain.LectureModel) error {
	return nil
}

func (r *fakeLectureRepo) DeleteLecture(ctx context.Context, id string) error {
	for i, l := range r.lectures {
		if l.ID == id {
			r.lectures = append(r.lectures[:i], r.lectures[i+1:]...)
			return nil
		}
	}
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
	for _, c := range r.courses {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCourseRepo) FindCourses(ctx context.Context, filter *domain.CourseFilter, page *domain.Pagination) ([]*domain.CourseModel, int, error) {
	return nil, 0, nil
}
func (r *fakeCourseRepo) UpdateCourse(ctx context.Context, post *domain.CourseModel) error {
	return nil
}
func (r *fakeCourseRepo) DeleteCourse(ctx context.Context, id string) error { return nil }

type fakeModuleRepo struct {
	modules map[string]*domain.CourseModuleModel
}

func (r *fakeModuleRepo) SaveModule(ctx context.Context, post *domain.CourseModuleModel) error {
	return nil
}
func (r *fakeModuleRepo) FindByID(ctx context.Context, id string) (*domain.CourseModuleModel, error) {
	return r.modules[id], nil
}
func (r *fakeModuleRepo) FindBySlug(ctx context.Context, slug string) (*domain.CourseModuleModel, error) {
	return nil, nil
}
func (r *fakeModuleRepo) FindModules(ctx context.Context, courseID string, filter *domain.CourseModuleFilter, page *domain.Pagination) ([]*domain.CourseModuleModel, int, error) {
	return nil, 0, nil
}
func (r *fakeModuleRepo) CountByCourse(ctx context.Context, courseID string) (int, error) {
	return len(r.modules), nil
}
func (r *fakeModuleRepo) UpdateModule(ctx context.Context, post *domain.CourseModuleModel) error {
	return nil
}
func (r *fakeModuleRepo) DeleteModule(ctx context.Context, id string) error { return nil }

type fakeProgressRepo struct {
	record *domain.ProgressModel
}

func (r *fakeProgressRepo) FindByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.ProgressModel, error) {
	return r.record, nil
}
func (r *fakeProgressRepo) FindByUser(ctx context.Context, userID string) ([]*domain.ProgressModel, error) {
	return nil, nil
}
func (r *fakeProgressRepo) GetOrCreate(ctx context.Context, userID, courseID, currentLecture string) (*domain.ProgressModel, error) {
	return r.record, nil
}
func (r *fakeProgressRepo) UpdateProgress(ctx context.Context, post *domain.ProgressModel) error {
	return nil
}

type fakeMediaStore struct {
	uploads int
	deleted []string
	fail    bool
}

func (s *fakeMediaStore) Upload(ctx context.Context, folder string, file *domain.UploadFile) (*domain.MediaAsset, error) {
	if s.fail {
		return nil, errors.New("upload failed")
	}
	s.uploads++
	id := fmt.Sprintf("%s/asset-%d", folder, s.uploads)
	return &domain.MediaAsset{PublicID: id, URL: "https://media.test/" + id}, nil
}

func (s *fakeMediaStore) Delete(ctx context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return nil
}

type lectureFixture struct {
	uc       *LectureUseCaseImpl
	lectures *fakeLectureRepo
	progress *fakeProgressRepo
	media    *fakeMediaStore
}

func newLectureFixture(t *testing.T, lectureCount int) *lectureFixture {
	t.Helper()
	lectures := &fakeLectureRepo{}
	for i := 0; i < lectureCount; i++ {
		now := time.Now()
		lectures.lectures = append(lectures.lectures, &domain.LectureModel{
			ID:        fmt.Sprintf("lec-%d", i+1),
			CourseID:  "course-1",
			ModuleID:  fmt.Sprintf("mod-%d", i/2+1),
			Title:     fmt.Sprintf("Lecture %d", i+1),
			Slug:      fmt.Sprintf("lecture-%d", i+1),
			Video:     &domain.MediaAsset{URL: fmt.Sprintf("https://media.test/video-%d", i+1)},
			PdfNotes:  []*domain.MediaAsset{{PublicID: fmt.Sprintf("notes-%d", i+1)}},
			Order:     i + 1,
			CreatedAt: &now,
		})
	}
	progressRepo := &fakeProgressRepo{}
	media := &fakeMediaStore{}
	uc := NewLectureUseCase(
		lectures,
		&fakeCourseRepo{courses: map[string]*domain.CourseModel{
			"course-1": {ID: "course-1", Title: "Course One"},
		}},
		&fakeModuleRepo{modules: map[string]*domain.CourseModuleModel{
			"mod-1": {ID: "mod-1", CourseID: "course-1"},
			"mod-2": {ID: "mod-2", CourseID: "course-1"},
		}},
		progressRepo,
		media,
	)
	return &lectureFixture{uc: uc, lectures: lectures, progress: progressRepo, media: media}
}

func TestCreateLecture_AppendsToSequence(t *testing.T) {
	fx := newLectureFixture(t, 2)

	created, err := fx.uc.CreateLecture(context.Background(), &domain.LectureModel{
		CourseID: "course-1",
		ModuleID: "mod-1",
		Title:    "Closing Remarks",
	}, []*domain.UploadFile{{Name: "notes.pdf", Content: []byte("pdf")}})
	require.NoError(t, err)

	assert.Equal(t, 3, created.Order)
	assert.Equal(t, "closing-remarks", created.Slug)
	require.Len(t, created.PdfNotes, 1)
	assert.Equal(t, 1, fx.media.uploads)
}

func TestCreateLecture_OrderNotReusedAfterDelete(t *testing.T) {
	fx := newLectureFixture(t, 4)

	// drop a middle lecture, the sequence is now 1, 3, 4
	require.NoError(t, fx.lectures.DeleteLecture(context.Background(), "lec-2"))

	created, err := fx.uc.CreateLecture(context.Background(), &domain.LectureModel{
		CourseID: "course-1",
		ModuleID: "mod-1",
		Title:    "Epilogue",
	}, []*domain.UploadFile{{Name: "notes.pdf", Content: []byte("pdf")}})
	require.NoError(t, err)

	assert.Equal(t, 5, created.Order, "count+1 would collide with order 4")
}

func TestCreateLecture_RequiresNotes(t *testing.T) {
	fx := newLectureFixture(t, 1)

	_, err := fx.uc.CreateLecture(context.Background(), &domain.LectureModel{
		CourseID: "course-1",
		ModuleID: "mod-1",
		Title:    "No Notes",
	}, nil)
	require.Error(t, err)
	assert.Equal(t, domain.KindBadRequest, domain.KindOf(err))
}

func TestCreateLecture_UnknownModule(t *testing.T) {
	fx := newLectureFixture(t, 1)

	_, err := fx.uc.CreateLecture(context.Background(), &domain.LectureModel{
		CourseID: "course-1",
		ModuleID: "missing",
		Title:    "Orphan",
	}, []*domain.UploadFile{{Name: "notes.pdf"}})
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestCreateLecture_RollsBackUploads(t *testing.T) {
	fx := newLectureFixture(t, 1)
	fx.lectures.saveErr = errors.New("insert failed")

	_, err := fx.uc.CreateLecture(context.Background(), &domain.LectureModel{
		CourseID: "course-1",
		ModuleID: "mod-1",
		Title:    "Doomed",
	}, []*domain.UploadFile{
		{Name: "a.pdf", Content: []byte("a")},
		{Name: "b.pdf", Content: []byte("b")},
	})
	require.Error(t, err)
	assert.Len(t, fx.media.deleted, 2, "uploaded assets must be cleaned up")
}

func TestListWithAccess_GuestAllLocked(t *testing.T) {
	fx := newLectureFixture(t, 3)

	views, err := fx.uc.ListWithAccess(context.Background(), "", "course-1", "")
	require.NoError(t, err)
	require.Len(t, views, 3)
	for _, v := range views {
		assert.True(t, v.IsLocked)
		assert.Nil(t, v.Video, "locked entries carry no media")
		assert.Empty(t, v.PdfNotes)
	}
}

func TestListWithAccess_AnnotatesProgress(t *testing.T) {
	fx := newLectureFixture(t, 4)
	fx.progress.record = &domain.ProgressModel{
		UserID:            "user-1",
		CourseID:          "course-1",
		CompletedLectures: []string{"lec-1"},
		CurrentLecture:    "lec-2",
	}

	views, err := fx.uc.ListWithAccess(context.Background(), "user-1", "course-1", "")
	require.NoError(t, err)
	require.Len(t, views, 4)

	assert.False(t, views[0].IsLocked)
	assert.True(t, views[0].IsCompleted)
	assert.False(t, views[1].IsLocked)
	assert.True(t, views[1].IsCurrent)
	assert.True(t, views[2].IsLocked, "lec-2 is still incomplete")
	assert.True(t, views[3].IsLocked)
	assert.NotEmpty(t, views[3].LockReason)

	assert.NotNil(t, views[0].Video)
	assert.NotEmpty(t, views[0].PdfNotes)
}

func TestListWithAccess_ModuleFilterKeepsCourseGating(t *testing.T) {
	fx := newLectureFixture(t, 4)
	// mod-2 holds lec-3 and lec-4, nothing is complete yet

	views, err := fx.uc.ListWithAccess(context.Background(), "user-1", "course-1", "mod-2")
	require.NoError(t, err)
	require.Len(t, views, 2)
	for _, v := range views {
		assert.True(t, v.IsLocked, "%s gates against the full course sequence", v.ID)
	}
}

func TestListWithAccess_RequiresCourse(t *testing.T) {
	fx := newLectureFixture(t, 1)

	_, err := fx.uc.ListWithAccess(context.Background(), "user-1", "", "")
	require.Error(t, err)
	assert.Equal(t, domain.KindBadRequest, domain.KindOf(err))
}

func TestGetLectureBySlug_MatchesBatchView(t *testing.T) {
	fx := newLectureFixture(t, 3)
	fx.progress.record = &domain.ProgressModel{
		UserID:            "user-1",
		CourseID:          "course-1",
		CompletedLectures: []string{"lec-1"},
		CurrentLecture:    "lec-2",
	}
	ctx := context.Background()

	views, err := fx.uc.ListWithAccess(ctx, "user-1", "course-1", "")
	require.NoError(t, err)

	for _, batch := range views {
		single, err := fx.uc.GetLectureBySlug(ctx, batch.Slug, "user-1")
		require.NoError(t, err)
		assert.Equal(t, batch.IsLocked, single.IsLocked, "single and batch must agree on %s", batch.ID)
		assert.Equal(t, batch.LockReason, single.LockReason)
	}
}

func TestGetLectureBySlug_Unknown(t *testing.T) {
	fx := newLectureFixture(t, 1)

	_, err := fx.uc.GetLectureBySlug(context.Background(), "missing", "user-1")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestDeleteLecture_RemovesMedia(t *testing.T) {
	fx := newLectureFixture(t, 2)

	err := fx.uc.DeleteLecture(context.Background(), "lecture-1")
	require.NoError(t, err)
	assert.Contains(t, fx.media.deleted, "notes-1")
}
