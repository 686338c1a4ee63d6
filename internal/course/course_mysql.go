package course

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rajdevullash/lms-task-backend/internal/domain"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/driver"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/uuid"
)

const courseColumns = `id, title, slug, description, price, thumbnail, created_by, created_at`

// CourseMySQL thumbnail is a JSON column holding the asset reference
type CourseMySQL struct {
	Conn          driver.ITransactionalDB
	UUIDGenerator uuid.Generator
}

var _ domain.CourseRepository = &CourseMySQL{}

func NewCourseRepository(Conn driver.ITransactionalDB, UUIDGenerator uuid.Generator) *CourseMySQL {
	return &CourseMySQL{Conn, UUIDGenerator}
}

func (repo *CourseMySQL) SaveCourse(ctx context.Context, post *domain.CourseModel) error {
	id, err := repo.UUIDGenerator.Generate()
	if err != nil {
		return err
	}
	thumbnail, err := json.Marshal(post.Thumbnail)
	if err != nil {
		return err
	}
	now := time.Now()

	_, err = repo.Conn.ExecContext(ctx, `INSERT INTO courses(`+courseColumns+`)
	VALUES($1,$2,$3,$4,$5,$6,$7,$8)`,
		id, post.Title, post.Slug, post.Description, post.Price, string(thumbnail), post.CreatedBy, now)
	if err != nil {
		return err
	}
	post.ID = id
	post.CreatedAt = &now
	return nil
}

func (repo *CourseMySQL) FindByID(ctx context.Context, id string) (*domain.CourseModel, error) {
	return repo.findOne(ctx, `SELECT `+courseColumns+` FROM courses WHERE id=$1`, id)
}

func (repo *CourseMySQL) FindBySlug(ctx context.Context, slug string) (*domain.CourseModel, error) {
	return repo.findOne(ctx, `SELECT `+courseColumns+` FROM courses WHERE slug=$1`, slug)
}

func (repo *CourseMySQL) FindCourses(ctx context.Context, filter *domain.CourseFilter, page *domain.Pagination) ([]*domain.CourseModel, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	if filter.SearchTerm != "" {
		// the mysql adapter maps $N positionally, repeat the term
		term := "%" + filter.SearchTerm + "%"
		args = append(args, term, term)
		where += fmt.Sprintf(` AND (title LIKE $%d OR description LIKE $%d)`, len(args)-1, len(args))
	}

	rows, err := repo.Conn.QueryContext(ctx, `SELECT COUNT(*) FROM courses`+where, args...)
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

	args = append(args, page.Limit, page.Offset())
	query := fmt.Sprintf(`SELECT `+courseColumns+` FROM courses`+where+
		` ORDER BY created_at %s LIMIT $%d OFFSET $%d`, page.SortOrder, len(args)-1, len(args))
	rows, err = repo.Conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []*domain.CourseModel
	for rows.Next() {
		item, err := scanCourse(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, item)
	}
	return result, total, nil
}

func (repo *CourseMySQL) UpdateCourse(ctx context.Context, post *domain.CourseModel) error {
	thumbnail, err := json.Marshal(post.Thumbnail)
	if err != nil {
		return err
	}
	_, err = repo.Conn.ExecContext(ctx, `UPDATE courses
	SET title=$1,
			slug=$2,
			description=$3,
			price=$4,
			thumbnail=$5
	WHERE id = $6;`, post.Title, post.Slug, post.Description, post.Price, string(thumbnail), post.ID)
	return err
}

func (repo *CourseMySQL) DeleteCourse(ctx context.Context, id string) error {
	_, err := repo.Conn.ExecContext(ctx, `DELETE FROM courses WHERE id=$1`, id)
	return err
}

func (repo *CourseMySQL) findOne(ctx context.Context, query string, arg interface{}) (*domain.CourseModel, error) {
	rows, err := repo.Conn.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		return scanCourse(rows)
	}
	return nil, nil
}

func scanCourse(rows driver.ISQLRows) (*domain.CourseModel, error) {
	item := new(domain.CourseModel)
	var thumbnail string
	if err := rows.Scan(&item.ID, &item.Title, &item.Slug, &item.Description, &item.Price, &thumbnail, &item.CreatedBy, &item.CreatedAt); err != nil {
		return nil, err
	}
	if thumbnail != "" && thumbnail != "null" {
		item.Thumbnail = new(domain.MediaAsset)
		if err := json.Unmarshal([]byte(thumbnail), item.Thumbnail); err != nil {
			return nil, err
		}
	}
	return item, nil
}
