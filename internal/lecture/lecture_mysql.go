package lecture

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rajdevullash/lms-task-backend/internal/domain"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/driver"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/uuid"
)

const lectureColumns = `id, course_id, module_id, title, slug, video_url, pdf_notes, lecture_order, created_at`

// LectureMySQL media references are stored as JSON columns, video_url holds
// one asset and pdf_notes an array.
type LectureMySQL struct {
	Conn          driver.ITransactionalDB
	UUIDGenerator uuid.Generator
}

var _ domain.LectureRepository = &LectureMySQL{}

func NewLectureRepository(Conn driver.ITransactionalDB, UUIDGenerator uuid.Generator) *LectureMySQL {
	return &LectureMySQL{Conn, UUIDGenerator}
}

func (repo *LectureMySQL) SaveLecture(ctx context.Context, post *domain.LectureModel) error {
	id, err := repo.UUIDGenerator.Generate()
	if err != nil {
		return err
	}
	video, notes, err := marshalMedia(post)
	if err != nil {
		return err
	}
	now := time.Now()

	_, err = repo.Conn.ExecContext(ctx, `INSERT INTO lectures(`+lectureColumns+`)
	VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		id, post.CourseID, post.ModuleID, post.Title, post.Slug, video, notes, post.Order, now)
	if err != nil {
		return err
	}
	post.ID = id
	post.CreatedAt = &now
	return nil
}

func (repo *LectureMySQL) FindByID(ctx context.Context, id string) (*domain.LectureModel, error) {
	return repo.findOne(ctx, `SELECT `+lectureColumns+` FROM lectures WHERE id=$1`, id)
}

func (repo *LectureMySQL) FindBySlug(ctx context.Context, slug string) (*domain.LectureModel, error) {
	return repo.findOne(ctx, `SELECT `+lectureColumns+` FROM lectures WHERE slug=$1`, slug)
}

func (repo *LectureMySQL) FindByCourse(ctx context.Context, courseID string) ([]*domain.LectureModel, error) {
	rows, err := repo.Conn.QueryContext(ctx, `SELECT `+lectureColumns+` FROM lectures
	WHERE course_id=$1 ORDER BY lecture_order ASC`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.LectureModel
	for rows.Next() {
		item, err := scanLecture(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

func (repo *LectureMySQL) MaxOrderByCourse(ctx context.Context, courseID string) (int, error) {
	rows, err := repo.Conn.QueryContext(ctx, `SELECT COALESCE(MAX(lecture_order), 0) FROM lectures WHERE course_id=$1`, courseID)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var max int
	if rows.Next() {
		if err := rows.Scan(&max); err != nil {
			return 0, err
		}
	}
	return max, nil
}

func (repo *LectureMySQL) FindLectures(ctx context.Context, filter *domain.LectureFilter, page *domain.Pagination) ([]*domain.LectureModel, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return placeholder(len(args))
	}
	if filter.CourseID != "" {
		where += ` AND course_id=` + arg(filter.CourseID)
	}
	if filter.ModuleID != "" {
		where += ` AND module_id=` + arg(filter.ModuleID)
	}
	if filter.SearchTerm != "" {
		where += ` AND title LIKE ` + arg("%"+filter.SearchTerm+"%")
	}

	rows, err := repo.Conn.QueryContext(ctx, `SELECT COUNT(*) FROM lectures`+where, args...)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if rows.Next() {
		if err := rows.Scan(&total); err != nil {
			rows.Close()
			return nil, 0, err
		}
	}
	rows.Close()

	query := `SELECT ` + lectureColumns + ` FROM lectures` + where +
		` ORDER BY created_at ` + page.SortOrder +
		` LIMIT ` + arg(page.Limit) + ` OFFSET ` + arg(page.Offset())
	rows, err = repo.Conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []*domain.LectureModel
	for rows.Next() {
		item, err := scanLecture(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, item)
	}
	return result, total, nil
}

func (repo *LectureMySQL) UpdateLecture(ctx context.Context, post *domain.LectureModel) error {
	video, notes, err := marshalMedia(post)
	if err != nil {
		return err
	}
	_, err = repo.Conn.ExecContext(ctx, `UPDATE lectures
	SET title=$1,
			slug=$2,
			video_url=$3,
			pdf_notes=$4
	WHERE id = $5;`, post.Title, post.Slug, video, notes, post.ID)
	return err
}

func (repo *LectureMySQL) DeleteLecture(ctx context.Context, id string) error {
	_, err := repo.Conn.ExecContext(ctx, `DELETE FROM lectures WHERE id=$1`, id)
	return err
}

func (repo *LectureMySQL) findOne(ctx context.Context, query string, arg interface{}) (*domain.LectureModel, error) {
	rows, err := repo.Conn.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		return scanLecture(rows)
	}
	return nil, nil
}

func marshalMedia(post *domain.LectureModel) (string, string, error) {
	video, err := json.Marshal(post.Video)
	if err != nil {
		return "", "", err
	}
	if post.PdfNotes == nil {
		post.PdfNotes = []*domain.MediaAsset{}
	}
	notes, err := json.Marshal(post.PdfNotes)
	if err != nil {
		return "", "", err
	}
	return string(video), string(notes), nil
}

func scanLecture(rows driver.ISQLRows) (*domain.LectureModel, error) {
	item := new(domain.LectureModel)
	var video, notes string
	if err := rows.Scan(&item.ID, &item.CourseID, &item.ModuleID, &item.Title, &item.Slug, &video, &notes, &item.Order, &item.CreatedAt); err != nil {
		return nil, err
	}
	if video != "" && video != "null" {
		item.Video = new(domain.MediaAsset)
		if err := json.Unmarshal([]byte(video), item.Video); err != nil {
			return nil, err
		}
	}
	if notes != "" {
		if err := json.Unmarshal([]byte(notes), &item.PdfNotes); err != nil {
			return nil, err
		}
	}
	if item.PdfNotes == nil {
		item.PdfNotes = []*domain.MediaAsset{}
	}
	return item, nil
}

func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}
