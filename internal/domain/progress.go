package domain

import (
	"context"
	"time"
)

// ProgressModel per-user-per-course completion state. At most one record
// exists per (user, course) pair; records spring into existence on first
// progress query or first completion.
type ProgressModel struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	CourseID           string     `json:"course_id"`
	CompletedLectures  []string   `json:"completed_lectures"`
	CurrentLecture     string     `json:"current_lecture"`
	ProgressPercentage float64    `json:"progress_percentage"`
	LastAccessed       *time.Time `json:"last_accessed"`
}

// Completed reports whether the lecture is in the completed set
func (p *ProgressModel) Completed(lectureID string) bool {
	for _, id := range p.CompletedLectures {
		if id == lectureID {
			return true
		}
	}
	return false
}

// AccessDecision outcome of the gating rule for one lecture
type AccessDecision struct {
	Allowed bool   `json:"can_access"`
	Reason  string `json:"reason,omitempty"`
}

// CompletionResult outcome of a completion event
type CompletionResult struct {
	Progress        *ProgressModel `json:"progress"`
	NextLecture     *LectureModel  `json:"next_lecture"`
	CourseCompleted bool           `json:"course_completed"`
}

type ProgressRepository interface {
	FindByUserAndCourse(ctx context.Context, userID, courseID string) (*ProgressModel, error)
	FindByUser(ctx context.Context, userID string) ([]*ProgressModel, error)
	// GetOrCreate returns the existing record for (user, course) or inserts a
	// fresh one with an empty completed set, the given current lecture and 0%.
	GetOrCreate(ctx context.Context, userID, courseID, currentLecture string) (*ProgressModel, error)
	UpdateProgress(ctx context.Context, post *ProgressModel) error
}

type ProgressUseCase interface {
	CheckLectureAccess(ctx context.Context, userID, courseID, lectureID string) (*AccessDecision, error)
	GetCourseProgress(ctx context.Context, userID, courseID string) (*ProgressModel, error)
	GetUserProgress(ctx context.Context, userID string) ([]*ProgressModel, error)
	MarkLectureComplete(ctx context.Context, userID, courseID, lectureID string) (*CompletionResult, error)
	UpdateCurrentLecture(ctx context.Context, userID, courseID, lectureID string) (*ProgressModel, error)
}
