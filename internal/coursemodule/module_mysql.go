package coursemodule

import (
	"context"
	"fmt"
	"time"

	"github.com/rajdevullash/lms-task-backend/internal/domain"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/driver"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/uuid"
)

const moduleColumns = `id, course_id, title, slug, module_number, created_at`

type CourseModuleMySQL struct {
	Conn          driver.ITransactionalDB
	UUIDGenerator uuid.Generator
}

var _ domain.CourseModuleRepository = &CourseModuleMySQL{}

func NewCourseModuleRepository(Conn driver.ITransactionalDB, UUIDGenerator uuid.Generator) *CourseModuleMySQL {
	return &CourseModuleMySQL{Conn, UUIDGenerator}
}

func (repo *CourseModuleMySQL) SaveModule(ctx context.Context, post *domain.CourseModuleModel) error {
	id, err := repo.UUIDGenerator.Generate()
	if err != nil {
		return err
	}
	now := time.Now()

	_, err = repo.Conn.ExecContext(ctx, `INSERT INTO course_modules(`+moduleColumns+`)
	VALUES($1,$2,$3,$4,$5,$6)`,
		id, post.CourseID, post.Title, post.Slug, post.ModuleNumber, now)
	if err != nil {
		return err
	}
	post.ID = id
	post.CreatedAt = &now
	return nil
}

func (repo *CourseModuleMySQL) FindByID(ctx context.Context, id string) (*domain.CourseModuleModel, error) {
	return repo.findOne(ctx, `SELECT `+moduleColumns+` FROM course_modules WHERE id=$1`, id)
}

func (repo *CourseModuleMySQL) FindBySlug(ctx context.Context, slug string) (*domain.CourseModuleModel, error) {
	return repo.findOne(ctx, `SELECT `+moduleColumns+` FROM course_modules WHERE slug=$1`, slug)
}

func (repo *CourseModuleMySQL) FindModules(ctx context.Context, courseID string, filter *domain.CourseModuleFilter, page *domain.Pagination) ([]*domain.CourseModuleModel, int, error) {
	where := ` WHERE course_id=$1`
	args := []interface{}{courseID}
	if filter.SearchTerm != "" {
		args = append(args, "%"+filter.SearchTerm+"%")
		where += fmt.Sprintf(` AND title LIKE $%d`, len(args))
	}

	rows, err := repo.Conn.QueryContext(ctx, `SELECT COUNT(*) FROM course_modules`+where, args...)
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
	query := fmt.Sprintf(`SELECT `+moduleColumns+` FROM course_modules`+where+
		` ORDER BY module_number ASC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err = repo.Conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []*domain.CourseModuleModel
	for rows.Next() {
		item, err := scanModule(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, item)
	}
	return result, total, nil
}

func (repo *CourseModuleMySQL) CountByCourse(ctx context.Context, courseID string) (int, error) {
	rows, err := repo.Conn.QueryContext(ctx, `SELECT COUNT(*) FROM course_modules WHERE course_id=$1`, courseID)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, err
		}
	}
	return count, nil
}

func (repo *CourseModuleMySQL) UpdateModule(ctx context.Context, post *domain.CourseModuleModel) error {
	_, err := repo.Conn.ExecContext(ctx, `UPDATE course_modules
	SET title=$1,
			slug=$2
	WHERE id = $3;`, post.Title, post.Slug, post.ID)
	return err
}

func (repo *CourseModuleMySQL) DeleteModule(ctx context.Context, id string) error {
	_, err := repo.Conn.ExecContext(ctx, `DELETE FROM course_modules WHERE id=$1`, id)
	return err
}

func (repo *CourseModuleMySQL) findOne(ctx context.Context, query string, arg interface{}) (*domain.CourseModuleModel, error) {
	rows, err := repo.Conn.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		return scanModule(rows)
	}
	return nil, nil
}

func scanModule(rows driver.ISQLRows) (*domain.CourseModuleModel, error) {
	item := new(domain.CourseModuleModel)
	if err := rows.Scan(&item.ID, &item.CourseID, &item.Title, &item.Slug, &item.ModuleNumber, &item.CreatedAt); err != nil {
		return nil, err
	}
	return item, nil
}
