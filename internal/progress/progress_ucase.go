package progress

import (
	"context"
	"time"

	"github.com/rajdevullash/lms-task-backend/internal/domain"
	"go.elastic.co/apm"
)

// ProgressUseCaseImpl ...
type ProgressUseCaseImpl struct {
	ProgressRepository domain.ProgressRepository
	LectureRepository  domain.LectureRepository
}

var _ domain.ProgressUseCase = &ProgressUseCaseImpl{}

// NewProgressUseCase ...
func NewProgressUseCase(
	ProgressRepository domain.ProgressRepository,
	LectureRepository domain.LectureRepository,
) *ProgressUseCaseImpl {
	return &ProgressUseCaseImpl{
		ProgressRepository: ProgressRepository,
		LectureRepository:  LectureRepository,
	}
}

// CheckLectureAccess evaluate the gating rule for a single lecture
func (pu *ProgressUseCaseImpl) CheckLectureAccess(ctx context.Context, userID, courseID, lectureID string) (*domain.AccessDecision, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "ProgressUseCaseImpl.CheckLectureAccess", "service")
	defer apmSpan.End()

	seq, err := pu.LectureRepository.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	prog, err := pu.ProgressRepository.FindByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	return CheckAccess(seq, prog, lectureID, userID != ""), nil
}

// GetCourseProgress return the progress record for (user, course), creating
// one pointing at the first lecture when none exists yet
func (pu *ProgressUseCaseImpl) GetCourseProgress(ctx context.Context, userID, courseID string) (*domain.ProgressModel, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "ProgressUseCaseImpl.GetCourseProgress", "service")
	defer apmSpan.End()

	// progress rows are owned, a guest must never create one
	if userID == "" {
		return nil, domain.NewUnauthorizedError(ReasonAuthRequired)
	}

	seq, err := pu.LectureRepository.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	first := ""
	if len(seq) > 0 {
		first = seq[0].ID
	}
	return pu.ProgressRepository.GetOrCreate(ctx, userID, courseID, first)
}

// GetUserProgress return all progress records of a user, most recently
// accessed first
func (pu *ProgressUseCaseImpl) GetUserProgress(ctx context.Context, userID string) ([]*domain.ProgressModel, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "ProgressUseCaseImpl.GetUserProgress", "service")
	defer apmSpan.End()

	return pu.ProgressRepository.FindByUser(ctx, userID)
}

// MarkLectureComplete record a completion event and advance the current
// lecture. Completing the same lecture twice only refreshes last_accessed.
func (pu *ProgressUseCaseImpl) MarkLectureComplete(ctx context.Context, userID, courseID, lectureID string) (*domain.CompletionResult, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "ProgressUseCaseImpl.MarkLectureComplete", "service")
	defer apmSpan.End()

	if userID == "" {
		return nil, domain.NewUnauthorizedError(ReasonAuthRequired)
	}

	seq, err := pu.LectureRepository.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	index := -1
	for i, l := range seq {
		if l.ID == lectureID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, domain.NewNotFoundError(ReasonLectureNotFound)
	}

	prog, err := pu.ProgressRepository.GetOrCreate(ctx, userID, courseID, lectureID)
	if err != nil {
		return nil, err
	}

	if !prog.Completed(lectureID) {
		prog.CompletedLectures = append(prog.CompletedLectures, lectureID)
	}
	prog.ProgressPercentage = percentage(len(prog.CompletedLectures), len(seq))

	var next *domain.LectureModel
	if index < len(seq)-1 {
		next = seq[index+1]
		prog.CurrentLecture = next.ID
	} else {
		prog.CurrentLecture = lectureID
	}

	now := time.Now()
	prog.LastAccessed = &now

	if err := pu.ProgressRepository.UpdateProgress(ctx, prog); err != nil {
		return nil, err
	}
	return &domain.CompletionResult{
		Progress:        prog,
		NextLecture:     next,
		CourseCompleted: prog.ProgressPercentage == 100,
	}, nil
}

// UpdateCurrentLecture set the current lecture directly. This is a
// navigation override and deliberately skips the gating rule; callers that
// want gating must run CheckLectureAccess first.
func (pu *ProgressUseCaseImpl) UpdateCurrentLecture(ctx context.Context, userID, courseID, lectureID string) (*domain.ProgressModel, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "ProgressUseCaseImpl.UpdateCurrentLecture", "service")
	defer apmSpan.End()

	if userID == "" {
		return nil, domain.NewUnauthorizedError(ReasonAuthRequired)
	}

	lecture, err := pu.LectureRepository.FindByID(ctx, lectureID)
	if err != nil {
		return nil, err
	}
	// the lookup is scoped, a lecture from another course cannot become
	// this course's current lecture
	if lecture == nil || lecture.CourseID != courseID {
		return nil, domain.NewNotFoundError(ReasonLectureNotFound)
	}

	prog, err := pu.ProgressRepository.GetOrCreate(ctx, userID, courseID, lectureID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	prog.CurrentLecture = lectureID
	prog.LastAccessed = &now
	if err := pu.ProgressRepository.UpdateProgress(ctx, prog); err != nil {
		return nil, err
	}
	return prog, nil
}

// percentage guard against zero-lecture courses, 0 instead of a division
// error
func percentage(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}
