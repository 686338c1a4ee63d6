package user

import (
	"context"

	"github.com/go-sql-driver/mysql"
	"github.com/rajdevullash/lms-task-backend/internal/domain"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/driver"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/uuid"
)

type UserMySQL struct {
	Conn          driver.ITransactionalDB
	UUIDGenerator uuid.Generator
}

var _ domain.UserRepository = &UserMySQL{}

func NewUserRepository(Conn driver.ITransactionalDB, UUIDGenerator uuid.Generator) *UserMySQL {
	return &UserMySQL{Conn, UUIDGenerator}
}

// FindByCredential query user with provided credential
func (repo *UserMySQL) FindByCredential(ctx context.Context, post *domain.UserModel) (*domain.UserModel, error) {
	conn := repo.Conn
	username := post.Username
	row, err := conn.QueryContext(ctx, `SELECT id, name, username, password, email, role, login_retry, last_login
	FROM user WHERE username=$1 OR email=$2`, username, username)
	if err != nil {
		return nil, err
	}
	defer row.Close()

	if row.Next() {
		return scanUser(row)
	}
	return nil, nil
}

func (repo *UserMySQL) FindByID(ctx context.Context, id string) (*domain.UserModel, error) {
	row, err := repo.Conn.QueryContext(ctx, `SELECT id, name, username, password, email, role, login_retry, last_login
	FROM user WHERE id=$1`, id)
	if err != nil {
		return nil, err
	}
	defer row.Close()

	if row.Next() {
		return scanUser(row)
	}
	return nil, nil
}

func (repo *UserMySQL) SaveUser(ctx context.Context, post *domain.UserModel) error {
	conn := repo.Conn
	// generate id
	UUIDGenerator := repo.UUIDGenerator
	if uuid, err := UUIDGenerator.Generate(); err == nil {
		post.ID = uuid
	} else {
		return err
	}
	if post.Role == "" {
		post.Role = domain.RoleUser
	}

	_, err := conn.ExecContext(ctx, `INSERT INTO user(id, name, username, password, email, role, last_login)
	VALUES($1,$2,$3,$4,$5,$6,$7)`, post.ID, post.Name, post.Username, post.Password, post.Email, post.Role, post.LastLogin)

	if err, ok := err.(*mysql.MySQLError); ok && err.Number == 1062 {
		return domain.ErrDuplicatedUser
	}
	return err
}

func (repo *UserMySQL) UpdateLogin(ctx context.Context, post *domain.UserModel) error {
	conn := repo.Conn
	_, err := conn.ExecContext(ctx, `UPDATE user
	SET login_retry=$1,
			last_login=$2
	WHERE id = $3;`, post.LoginRetry, post.LastLogin, post.ID)
	return err
}

func scanUser(row driver.ISQLRows) (*domain.UserModel, error) {
	user := new(domain.UserModel)
	if err := row.Scan(&user.ID, &user.Name, &user.Username, &user.Password, &user.Email, &user.Role, &user.LoginRetry, &user.LastLogin); err != nil {
		return nil, err
	}
	return user, nil
}
