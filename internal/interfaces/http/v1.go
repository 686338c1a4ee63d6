package http

import (
	"github.com/labstack/echo/v4"
	"github.com/rajdevullash/lms-task-backend/internal/infrastructure/ws"
)

type v1Middlewares struct {
	requestID   echo.MiddlewareFunc
	traceLogger echo.MiddlewareFunc
	jwt         echo.MiddlewareFunc
	optionalJWT echo.MiddlewareFunc
	refresh     echo.MiddlewareFunc
	adminOnly   echo.MiddlewareFunc
}

func v1Endpoint(
	websocket *ws.Websocket,
	UserHandler *UserHandler,
	CourseHandler *CourseHandler,
	ModuleHandler *ModuleHandler,
	LectureHandler *LectureHandler,
	ProgressHandler *ProgressHandler,
	mw *v1Middlewares,
) *endpoint {
	authenticated := []echo.MiddlewareFunc{mw.jwt, mw.refresh}
	adminOnly := []echo.MiddlewareFunc{mw.jwt, mw.adminOnly, mw.refresh}

	return &endpoint{
		apiVersion:  "api/v1",
		middlewares: []echo.MiddlewareFunc{mw.requestID, mw.traceLogger},
		groups: []*apiGroup{
			{
				prefix: "/user",
				routes: []*route{
					{"POST", "/login", UserHandler.HandleSignIn, nil},
					{"PUT", "/sign-out", UserHandler.HandleSignOut, nil},
					{"POST", "/sign-up", UserHandler.HandleSignUp, nil},
					{"GET", "/exists", UserHandler.HandleUserExists, nil},
				},
			},
			{
				prefix: "/course",
				routes: []*route{
					{"GET", "", CourseHandler.HandleGetAllCourses, nil},
					{"GET", "/:slug", CourseHandler.HandleGetCourseBySlug, nil},
					{"POST", "", CourseHandler.HandleCreateCourse, adminOnly},
					{"PUT", "/:slug", CourseHandler.HandleUpdateCourse, adminOnly},
					{"DELETE", "/:slug", CourseHandler.HandleDeleteCourse, adminOnly},
				},
			},
			{
				prefix: "/module",
				routes: []*route{
					{"GET", "/:courseId", ModuleHandler.HandleGetCourseModules, nil},
					{"POST", "", ModuleHandler.HandleCreateModule, adminOnly},
					{"PUT", "/:slug", ModuleHandler.HandleUpdateModule, adminOnly},
					{"DELETE", "/:slug", ModuleHandler.HandleDeleteModule, adminOnly},
				},
			},
			{
				prefix: "/lecture",
				routes: []*route{
					{"GET", "", LectureHandler.HandleListWithAccess, []echo.MiddlewareFunc{mw.optionalJWT}},
					{"GET", "/all", LectureHandler.HandleGetAllLectures, adminOnly},
					{"GET", "/:slug", LectureHandler.HandleGetLectureBySlug, []echo.MiddlewareFunc{mw.optionalJWT}},
					{"POST", "", LectureHandler.HandleCreateLecture, adminOnly},
					{"PUT", "/:slug", LectureHandler.HandleUpdateLecture, adminOnly},
					{"DELETE", "/:slug", LectureHandler.HandleDeleteLecture, adminOnly},
				},
			},
			{
				prefix: "/progress",
				routes: []*route{
					{"GET", "/check-lecture-access/:courseId/:lectureId", ProgressHandler.HandleCheckLectureAccess, []echo.MiddlewareFunc{mw.optionalJWT}},
					{"GET", "/get-course/:courseId", ProgressHandler.HandleGetCourseProgress, authenticated},
					{"GET", "/get-user-progress", ProgressHandler.HandleGetUserProgress, authenticated},
					{"POST", "/lecture-completed", ProgressHandler.HandleMarkLectureComplete, authenticated},
					{"PATCH", "/current-lecture", ProgressHandler.HandleUpdateCurrentLecture, authenticated},
				},
			},
			{
				prefix: "/ws",
				routes: []*route{
					{"GET", "/progress", websocket.WithHeartbeat(ProgressHandler.HandleProgressSocket), []echo.MiddlewareFunc{mw.optionalJWT}},
				},
			},
		},
	}
}
