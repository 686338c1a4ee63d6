package main

import (
	"context"
	"log"

	"github.com/rajdevullash/lms-task-backend/internal/course"
	"github.com/rajdevullash/lms-task-backend/internal/coursemodule"
	infra "github.com/rajdevullash/lms-task-backend/internal/infrastructure"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/driver"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/logging"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/media"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/uuid"
	ihttp "github.com/rajdevullash/lms-task-backend/internal/interfaces/http"
	"github.com/rajdevullash/lms-task-backend/internal/lecture"
	"github.com/rajdevullash/lms-task-backend/internal/progress"
	"github.com/rajdevullash/lms-task-backend/internal/user"
	"go.uber.org/zap"
)

func main() {
	log.SetFlags(log.Lshortfile | log.Ldate | log.Ltime)
	option, err := infra.InitConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewLogger(&logging.Config{
		FilePath: option.Logging.FilePath,
		Level:    option.Logging.Level,
		AppID:    option.AppID,
		Env:      option.Env,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %s\n", err)
	}
	logger = logger.With(
		zap.String("service.id", option.AppID),
	)
	defer logger.Sync()

	dbConn, err := driver.GetDBConnection(&driver.DBConfig{
		User:     option.Database.User,
		Password: option.Database.Password,
		MaxConn:  option.Database.MaxConn,
		Protocol: option.Database.Protocol,
		Driver:   option.Database.Driver,
		Host:     option.Database.Host,
		Port:     option.Database.Port,
		Query:    option.Database.Query,
		Schema:   option.Database.Schema,
	})
	if err != nil {
		log.Fatalf("Failed to create DB connection: %s\n", err)
	}
	logger.Debug("Create db connection instance", zap.String("db.driver", option.Database.Driver),
		zap.String("db.schema", option.Database.Schema),
		zap.String("db.host", option.Database.Host),
	)

	rdb := driver.NewRedisClient(option.KVStore.Host, option.KVStore.Port, option.KVStore.Password)

	UUIDGenerator := uuid.NewNanoIDGenerator(option.Security.IDLength)

	MediaStore, err := media.NewGCSStore(context.Background(), &media.GCSConfig{
		Bucket:  option.Media.Bucket,
		BaseURL: option.Media.BaseURL,
	}, UUIDGenerator)
	if err != nil {
		log.Fatalf("Failed to create media store: %s\n", err)
	}

	UserRepo := user.NewUserRepository(dbConn, UUIDGenerator)
	UserUseCase := user.NewUserUseCase(UserRepo)

	CourseRepo := course.NewCourseRepository(dbConn, UUIDGenerator)
	CourseUseCase := course.NewCourseUseCase(CourseRepo, UserRepo, MediaStore)

	ModuleRepo := coursemodule.NewCourseModuleRepository(dbConn, UUIDGenerator)
	ModuleUseCase := coursemodule.NewCourseModuleUseCase(ModuleRepo, CourseRepo)

	LectureRepo := lecture.NewLectureRepository(dbConn, UUIDGenerator)
	ProgressRepo := progress.NewProgressRepository(dbConn, UUIDGenerator)

	LectureUseCase := lecture.NewLectureUseCase(LectureRepo, CourseRepo, ModuleRepo, ProgressRepo, MediaStore)
	ProgressUseCase := progress.NewProgressUseCase(ProgressRepo, LectureRepo)

	ihttp.Serve(dbConn, rdb, option,
		UserUseCase, UserRepo,
		CourseUseCase, ModuleUseCase, LectureUseCase, ProgressUseCase,
		logger)
}
