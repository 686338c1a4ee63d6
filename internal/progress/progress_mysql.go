package progress

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgconn"
	"github.com/rajdevullash/lms-task-backend/internal/domain"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/driver"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/uuid"
)

// ProgressMySQL progress records live in a single row per (user, course);
// the completed set is a JSON column so an update rewrites the whole
// document, read-modify-write, last writer wins.
type ProgressMySQL struct {
	Conn          driver.ITransactionalDB
	UUIDGenerator uuid.Generator
}

var _ domain.ProgressRepository = &ProgressMySQL{}

func NewProgressRepository(Conn driver.ITransactionalDB, UUIDGenerator uuid.Generator) *ProgressMySQL {
	return &ProgressMySQL{Conn, UUIDGenerator}
}

func (repo *ProgressMySQL) FindByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.ProgressModel, error) {
	rows, err := repo.Conn.QueryContext(ctx, `SELECT id, user_id, course_id, completed_lectures, current_lecture, progress_percentage, last_accessed
	FROM progress WHERE user_id=$1 AND course_id=$2`, userID, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		return scanProgress(rows)
	}
	return nil, nil
}

func (repo *ProgressMySQL) FindByUser(ctx context.Context, userID string) ([]*domain.ProgressModel, error) {
	rows, err := repo.Conn.QueryContext(ctx, `SELECT id, user_id, course_id, completed_lectures, current_lecture, progress_percentage, last_accessed
	FROM progress WHERE user_id=$1 ORDER BY last_accessed DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.ProgressModel
	for rows.Next() {
		item, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

func (repo *ProgressMySQL) GetOrCreate(ctx context.Context, userID, courseID, currentLecture string) (*domain.ProgressModel, error) {
	if existing, err := repo.FindByUserAndCourse(ctx, userID, courseID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	id, err := repo.UUIDGenerator.Generate()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	post := &domain.ProgressModel{
		ID:                 id,
		UserID:             userID,
		CourseID:           courseID,
		CompletedLectures:  []string{},
		CurrentLecture:     currentLecture,
		ProgressPercentage: 0,
		LastAccessed:       &now,
	}
	_, err = repo.Conn.ExecContext(ctx, `INSERT INTO progress(id, user_id, course_id, completed_lectures, current_lecture, progress_percentage, last_accessed)
	VALUES($1,$2,$3,$4,$5,$6,$7)`,
		post.ID, post.UserID, post.CourseID, "[]", post.CurrentLecture, post.ProgressPercentage, post.LastAccessed)
	if isDuplicateKey(err) {
		// lost the insert race, the winner's row is authoritative
		return repo.FindByUserAndCourse(ctx, userID, courseID)
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (repo *ProgressMySQL) UpdateProgress(ctx context.Context, post *domain.ProgressModel) error {
	completed, err := json.Marshal(post.CompletedLectures)
	if err != nil {
		return err
	}
	_, err = repo.Conn.ExecContext(ctx, `UPDATE progress
	SET completed_lectures=$1,
			current_lecture=$2,
			progress_percentage=$3,
			last_accessed=$4
	WHERE id = $5;`, string(completed), post.CurrentLecture, post.ProgressPercentage, post.LastAccessed, post.ID)
	return err
}

// isDuplicateKey unique constraint violation on either backing driver,
// mysql 1062 or postgres 23505
func isDuplicateKey(err error) bool {
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1062
	}
	var perr *pgconn.PgError
	if errors.As(err, &perr) {
		return perr.Code == "23505"
	}
	return false
}

func scanProgress(rows driver.ISQLRows) (*domain.ProgressModel, error) {
	item := new(domain.ProgressModel)
	var completed string
	if err := rows.Scan(&item.ID, &item.UserID, &item.CourseID, &completed, &item.CurrentLecture, &item.ProgressPercentage, &item.LastAccessed); err != nil {
		return nil, err
	}
	if completed != "" {
		if err := json.Unmarshal([]byte(completed), &item.CompletedLectures); err != nil {
			return nil, err
		}
	}
	if item.CompletedLectures == nil {
		item.CompletedLectures = []string{}
	}
	return item, nil
}
