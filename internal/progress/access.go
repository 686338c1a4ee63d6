package progress

import (
	"fmt"

	"github.com/rajdevullash/lms-task-backend/internal/domain"
)

// access decision reasons
const (
	ReasonLectureNotFound  = "Lecture not found"
	ReasonAuthRequired     = "Authentication required"
	ReasonStartWithFirst   = "Start with the first lecture"
	ReasonCompleted        = "Completed"
	ReasonCurrentLecture   = "Current lecture"
	ReasonFirstLecture     = "First lecture"
	ReasonPrevComplete     = "Previous lectures completed"
	genericPrerequisite    = "previous lectures"
	reasonCompleteFirstFmt = `Complete %q first`
)

// CheckAccess is the single gating rule deciding whether a lecture may be
// unlocked. seq must be the full course sequence sorted by ascending order;
// prog may be nil (no record yet); authenticated is false for guests.
//
// The rule is a pure function of its inputs: no I/O, idempotent and
// order-independent, so single checks and batch annotation cannot diverge.
func CheckAccess(seq []*domain.LectureModel, prog *domain.ProgressModel, lectureID string, authenticated bool) *domain.AccessDecision {
	index := -1
	for i, l := range seq {
		if l.ID == lectureID {
			index = i
			break
		}
	}
	if index < 0 {
		return &domain.AccessDecision{Allowed: false, Reason: ReasonLectureNotFound}
	}

	if !authenticated {
		return &domain.AccessDecision{Allowed: false, Reason: ReasonAuthRequired}
	}

	// no record yet, only the first lecture is open
	if prog == nil {
		if index == 0 {
			return &domain.AccessDecision{Allowed: true}
		}
		return &domain.AccessDecision{Allowed: false, Reason: ReasonStartWithFirst}
	}

	if prog.Completed(lectureID) {
		return &domain.AccessDecision{Allowed: true, Reason: ReasonCompleted}
	}

	if prog.CurrentLecture == lectureID {
		return &domain.AccessDecision{Allowed: true, Reason: ReasonCurrentLecture}
	}

	if index == 0 {
		return &domain.AccessDecision{Allowed: true, Reason: ReasonFirstLecture}
	}

	var firstIncomplete *domain.LectureModel
	for _, prev := range seq[:index] {
		if !prog.Completed(prev.ID) {
			firstIncomplete = prev
			break
		}
	}
	if firstIncomplete == nil {
		return &domain.AccessDecision{Allowed: true, Reason: ReasonPrevComplete}
	}

	title := firstIncomplete.Title
	if title == "" {
		title = genericPrerequisite
	}
	return &domain.AccessDecision{
		Allowed: false,
		Reason:  fmt.Sprintf(reasonCompleteFirstFmt, title),
	}
}
