package progress

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rajdevullash/lms-task-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProgressRepo struct {
	records map[string]*domain.ProgressModel
	created int
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{records: make(map[string]*domain.ProgressModel)}
}

func progressKey(userID, courseID string) string {
	return userID + "/" + courseID
}

func (r *fakeProgressRepo) FindByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.ProgressModel, error) {
	return r.records[progressKey(userID, courseID)], nil
}

func (r *fakeProgressRepo) FindByUser(ctx context.Context, userID string) ([]*domain.ProgressModel, error) {
	var result []*domain.ProgressModel
	for _, p := range r.records {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakeProgressRepo) GetOrCreate(ctx context.Context, userID, courseID, currentLecture string) (*domain.ProgressModel, error) {
	if existing := r.records[progressKey(userID, courseID)]; existing != nil {
		return existing, nil
	}
	now := time.Now()
	record := &domain.ProgressModel{
		ID:                fmt.Sprintf("prog-%d", len(r.records)+1),
		UserID:            userID,
		CourseID:          courseID,
		CompletedLectures: []string{},
		CurrentLecture:    currentLecture,
		LastAccessed:      &now,
	}
	r.records[progressKey(userID, courseID)] = record
	r.created++
	return record, nil
}

func (r *fakeProgressRepo) UpdateProgress(ctx context.Context, post *domain.ProgressModel) error {
	r.records[progressKey(post.UserID, post.CourseID)] = post
	return nil
}

type fakeLectureRepo struct {
	sequences map[string][]*domain.LectureModel
}

func newFakeLectureRepo(seqs map[string][]*domain.LectureModel) *fakeLectureRepo {
	return &fakeLectureRepo{sequences: seqs}
}

func (r *fakeLectureRepo) SaveLecture(ctx context.Context, post *domain.LectureModel) error {
	return nil
}

func (r *fakeLectureRepo) FindByID(ctx context.Context, id string) (*domain.LectureModel, error) {
	for _, seq := range r.sequences {
		for _, l := range seq {
			if l.ID == id {
				return l, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeLectureRepo) FindBySlug(ctx context.Context, slug string) (*domain.LectureModel, error) {
	for _, seq := range r.sequences {
		for _, l := range seq {
			if l.Slug == slug {
				return l, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeLectureRepo) FindByCourse(ctx context.Context, courseID string) ([]*domain.LectureModel, error) {
	return r.sequences[courseID], nil
}

func (r *fakeLectureRepo) MaxOrderByCourse(ctx context.Context, courseID string) (int, error) {
	max := 0
	for _, l := range r.sequences[courseID] {
		if l.Order > max {
			max = l.Order
		}
	}
	return max, nil
}

func (r *fakeLectureRepo) FindLectures(ctx context.Context, filter *domain.LectureFilter, page *domain.Pagination) ([]*domain.LectureModel, int, error) {
	seq := r.sequences[filter.CourseID]
	return seq, len(seq), nil
}

func (r *fakeLectureRepo) UpdateLecture(ctx context.Context, post *domain.LectureModel) error {
	return nil
}

func (r *fakeLectureRepo) DeleteLecture(ctx context.Context, id string) error {
	return nil
}

func newProgressFixture(n int) (*ProgressUseCaseImpl, *fakeProgressRepo) {
	seq := buildSequence(n)
	for _, l := range seq {
		l.CourseID = "course-1"
	}
	repo := newFakeProgressRepo()
	uc := NewProgressUseCase(repo, newFakeLectureRepo(map[string][]*domain.LectureModel{
		"course-1": seq,
	}))
	return uc, repo
}

func TestMarkLectureComplete_Advances(t *testing.T) {
	uc, _ := newProgressFixture(3)
	ctx := context.Background()

	result, err := uc.MarkLectureComplete(ctx, "user-1", "course-1", "lec-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"lec-1"}, result.Progress.CompletedLectures)
	require.NotNil(t, result.NextLecture)
	assert.Equal(t, "lec-2", result.NextLecture.ID)
	assert.Equal(t, "lec-2", result.Progress.CurrentLecture)
	assert.InDelta(t, 33.33, result.Progress.ProgressPercentage, 0.01)
	assert.False(t, result.CourseCompleted)
}

func TestMarkLectureComplete_Idempotent(t *testing.T) {
	uc, _ := newProgressFixture(3)
	ctx := context.Background()

	first, err := uc.MarkLectureComplete(ctx, "user-1", "course-1", "lec-1")
	require.NoError(t, err)
	second, err := uc.MarkLectureComplete(ctx, "user-1", "course-1", "lec-1")
	require.NoError(t, err)

	assert.Equal(t, first.Progress.CompletedLectures, second.Progress.CompletedLectures)
	assert.Equal(t, first.Progress.ProgressPercentage, second.Progress.ProgressPercentage)
}

func TestMarkLectureComplete_PercentageMonotonic(t *testing.T) {
	uc, _ := newProgressFixture(4)
	ctx := context.Background()

	last := 0.0
	for _, id := range []string{"lec-1", "lec-2", "lec-3", "lec-4"} {
		result, err := uc.MarkLectureComplete(ctx, "user-1", "course-1", id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Progress.ProgressPercentage, last)
		last = result.Progress.ProgressPercentage
	}
	assert.Equal(t, 100.0, last)
}

func TestMarkLectureComplete_LastLecture(t *testing.T) {
	uc, _ := newProgressFixture(2)
	ctx := context.Background()

	_, err := uc.MarkLectureComplete(ctx, "user-1", "course-1", "lec-1")
	require.NoError(t, err)
	result, err := uc.MarkLectureComplete(ctx, "user-1", "course-1", "lec-2")
	require.NoError(t, err)

	assert.Nil(t, result.NextLecture, "no successor after the last lecture")
	assert.Equal(t, "lec-2", result.Progress.CurrentLecture)
	assert.True(t, result.CourseCompleted)
}

func TestMarkLectureComplete_UnknownLecture(t *testing.T) {
	uc, repo := newProgressFixture(3)

	_, err := uc.MarkLectureComplete(context.Background(), "user-1", "course-1", "missing")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Zero(t, repo.created, "no record for failed completion")
}

func TestGetCourseProgress_LazyCreate(t *testing.T) {
	uc, repo := newProgressFixture(3)
	ctx := context.Background()

	record, err := uc.GetCourseProgress(ctx, "user-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.created)
	assert.Equal(t, "lec-1", record.CurrentLecture)
	assert.Empty(t, record.CompletedLectures)
	assert.Zero(t, record.ProgressPercentage)

	again, err := uc.GetCourseProgress(ctx, "user-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.created, "second read reuses the record")
	assert.Equal(t, record.ID, again.ID)
}

func TestGetCourseProgress_EmptyCourse(t *testing.T) {
	repo := newFakeProgressRepo()
	uc := NewProgressUseCase(repo, newFakeLectureRepo(map[string][]*domain.LectureModel{}))

	record, err := uc.GetCourseProgress(context.Background(), "user-1", "course-empty")
	require.NoError(t, err)
	assert.Empty(t, record.CurrentLecture)
	assert.Zero(t, record.ProgressPercentage)
}

func TestUpdateCurrentLecture_SkipsGating(t *testing.T) {
	uc, _ := newProgressFixture(5)
	ctx := context.Background()

	// lec-4 would be denied by the gating rule
	record, err := uc.UpdateCurrentLecture(ctx, "user-1", "course-1", "lec-4")
	require.NoError(t, err)
	assert.Equal(t, "lec-4", record.CurrentLecture)

	decision, err := uc.CheckLectureAccess(ctx, "user-1", "course-1", "lec-4")
	require.NoError(t, err)
	assert.True(t, decision.Allowed, "current lecture is reachable afterwards")
}

func TestUpdateCurrentLecture_UnknownLecture(t *testing.T) {
	uc, _ := newProgressFixture(3)

	_, err := uc.UpdateCurrentLecture(context.Background(), "user-1", "course-1", "missing")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestGetCourseProgress_GuestDenied(t *testing.T) {
	uc, repo := newProgressFixture(3)

	_, err := uc.GetCourseProgress(context.Background(), "", "course-1")
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
	assert.Zero(t, repo.created, "no ownerless record for a guest")
}

func TestMarkLectureComplete_GuestDenied(t *testing.T) {
	uc, repo := newProgressFixture(3)

	_, err := uc.MarkLectureComplete(context.Background(), "", "course-1", "lec-1")
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
	assert.Zero(t, repo.created)
}

func TestUpdateCurrentLecture_ForeignCourseLecture(t *testing.T) {
	seqA := buildSequence(2)
	for _, l := range seqA {
		l.CourseID = "course-1"
	}
	other := &domain.LectureModel{ID: "other-1", Title: "Other", Order: 1, CourseID: "course-2"}
	repo := newFakeProgressRepo()
	uc := NewProgressUseCase(repo, newFakeLectureRepo(map[string][]*domain.LectureModel{
		"course-1": seqA,
		"course-2": {other},
	}))

	_, err := uc.UpdateCurrentLecture(context.Background(), "user-1", "course-1", "other-1")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Zero(t, repo.created, "no record keyed to the wrong course")
}

func TestCheckLectureAccess_GuestGetsDecision(t *testing.T) {
	uc, _ := newProgressFixture(3)

	decision, err := uc.CheckLectureAccess(context.Background(), "", "course-1", "lec-1")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonAuthRequired, decision.Reason)
}

func TestPercentage_ZeroTotal(t *testing.T) {
	assert.Zero(t, percentage(0, 0))
	assert.Zero(t, percentage(3, 0))
}
