package progress

import (
	"fmt"
	"testing"

	"github.com/rajdevullash/lms-task-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func buildSequence(n int) []*domain.LectureModel {
	seq := make([]*domain.LectureModel, n)
	for i := 0; i < n; i++ {
		seq[i] = &domain.LectureModel{
			ID:    fmt.Sprintf("lec-%d", i+1),
			Title: fmt.Sprintf("Lecture %d", i+1),
			Order: i + 1,
		}
	}
	return seq
}

func TestCheckAccess_UnknownLecture(t *testing.T) {
	seq := buildSequence(3)
	decision := CheckAccess(seq, nil, "missing", true)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonLectureNotFound, decision.Reason)
}

func TestCheckAccess_GuestDenied(t *testing.T) {
	seq := buildSequence(3)
	for _, l := range seq {
		decision := CheckAccess(seq, nil, l.ID, false)
		assert.False(t, decision.Allowed, "guest must not unlock %s", l.ID)
		assert.Equal(t, ReasonAuthRequired, decision.Reason)
	}
}

func TestCheckAccess_NoRecordOnlyFirstOpen(t *testing.T) {
	seq := buildSequence(4)

	decision := CheckAccess(seq, nil, "lec-1", true)
	assert.True(t, decision.Allowed)

	for _, id := range []string{"lec-2", "lec-3", "lec-4"} {
		decision := CheckAccess(seq, nil, id, true)
		assert.False(t, decision.Allowed)
		assert.Equal(t, ReasonStartWithFirst, decision.Reason)
	}
}

func TestCheckAccess_CompletedAlwaysOpen(t *testing.T) {
	seq := buildSequence(5)
	prog := &domain.ProgressModel{
		CompletedLectures: []string{"lec-1", "lec-2"},
		CurrentLecture:    "lec-3",
	}

	for _, id := range []string{"lec-1", "lec-2"} {
		decision := CheckAccess(seq, prog, id, true)
		assert.True(t, decision.Allowed)
		assert.Equal(t, ReasonCompleted, decision.Reason)
	}
}

func TestCheckAccess_CurrentLectureOpen(t *testing.T) {
	seq := buildSequence(5)
	prog := &domain.ProgressModel{
		CompletedLectures: []string{"lec-1", "lec-2"},
		CurrentLecture:    "lec-3",
	}

	decision := CheckAccess(seq, prog, "lec-3", true)
	assert.True(t, decision.Allowed)
	assert.Equal(t, ReasonCurrentLecture, decision.Reason)
}

func TestCheckAccess_SuccessorLocked(t *testing.T) {
	seq := buildSequence(5)
	prog := &domain.ProgressModel{
		CompletedLectures: []string{"lec-1", "lec-2"},
		CurrentLecture:    "lec-3",
	}

	// lec-3 is the first incomplete predecessor of both
	for _, id := range []string{"lec-4", "lec-5"} {
		decision := CheckAccess(seq, prog, id, true)
		assert.False(t, decision.Allowed)
		assert.Equal(t, `Complete "Lecture 3" first`, decision.Reason)
	}
}

func TestCheckAccess_FirstLectureAlwaysOpen(t *testing.T) {
	seq := buildSequence(3)
	prog := &domain.ProgressModel{CurrentLecture: "lec-2"}

	decision := CheckAccess(seq, prog, "lec-1", true)
	assert.True(t, decision.Allowed)
	assert.Equal(t, ReasonFirstLecture, decision.Reason)
}

func TestCheckAccess_AllPredecessorsComplete(t *testing.T) {
	seq := buildSequence(4)
	prog := &domain.ProgressModel{
		CompletedLectures: []string{"lec-1", "lec-2"},
		CurrentLecture:    "lec-2",
	}

	decision := CheckAccess(seq, prog, "lec-3", true)
	assert.True(t, decision.Allowed)
	assert.Equal(t, ReasonPrevComplete, decision.Reason)
}

func TestCheckAccess_GapBlocksLaterLectures(t *testing.T) {
	seq := buildSequence(5)
	// lec-2 was skipped
	prog := &domain.ProgressModel{
		CompletedLectures: []string{"lec-1", "lec-3"},
		CurrentLecture:    "lec-4",
	}

	decision := CheckAccess(seq, prog, "lec-5", true)
	assert.False(t, decision.Allowed)
	assert.Equal(t, `Complete "Lecture 2" first`, decision.Reason)
}

func TestCheckAccess_UntitledPrerequisite(t *testing.T) {
	seq := buildSequence(3)
	seq[1].Title = ""
	prog := &domain.ProgressModel{
		CompletedLectures: []string{"lec-1"},
		CurrentLecture:    "lec-2",
	}

	decision := CheckAccess(seq, prog, "lec-3", true)
	assert.False(t, decision.Allowed)
	assert.Equal(t, `Complete "previous lectures" first`, decision.Reason)
}

func TestCheckAccess_Pure(t *testing.T) {
	seq := buildSequence(4)
	prog := &domain.ProgressModel{
		CompletedLectures: []string{"lec-1"},
		CurrentLecture:    "lec-2",
	}

	first := CheckAccess(seq, prog, "lec-3", true)
	second := CheckAccess(seq, prog, "lec-3", true)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"lec-1"}, prog.CompletedLectures, "decision must not mutate the record")
}
