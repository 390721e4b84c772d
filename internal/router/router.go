package router

import (
	"workforce/backend/foundation/web"
	"workforce/backend/internal/auth"
	"workforce/backend/internal/middleware"
	"workforce/backend/internal/pkg/repository/postgresql"
	"workforce/backend/internal/pkg/repository/redisdb"
	"workforce/backend/internal/repository/postgres/department"
	"workforce/backend/internal/repository/postgres/event"
	"workforce/backend/internal/repository/postgres/holiday"
	"workforce/backend/internal/repository/postgres/leave"
	"workforce/backend/internal/repository/postgres/officeinfo"
	"workforce/backend/internal/repository/postgres/position"
	"workforce/backend/internal/repository/postgres/remoterequest"
	"workforce/backend/internal/repository/postgres/task"
	"workforce/backend/internal/repository/postgres/user"
	"workforce/backend/internal/service/reconciler"

	"github.com/redis/go-redis/v9"

	attendance_controller "workforce/backend/internal/controller/http/v1/attendance"
	auth_controller "workforce/backend/internal/controller/http/v1/auth"
	department_controller "workforce/backend/internal/controller/http/v1/department"
	holiday_controller "workforce/backend/internal/controller/http/v1/holiday"
	leave_controller "workforce/backend/internal/controller/http/v1/leave"
	officeinfo_controller "workforce/backend/internal/controller/http/v1/officeinfo"
	position_controller "workforce/backend/internal/controller/http/v1/position"
	remoterequest_controller "workforce/backend/internal/controller/http/v1/remoterequest"
	task_controller "workforce/backend/internal/controller/http/v1/task"
	user_controller "workforce/backend/internal/controller/http/v1/user"
)

type Router struct {
	*web.App
	postgresDB     *postgresql.Database
	redisDB        *redis.Client
	port           string
	auth           *auth.Auth
	privateKeyPath string
	allowedOrigins []string
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	port string,
	auth *auth.Auth,
	privateKeyPath string,
	allowedOrigins []string,
) *Router {
	return &Router{
		app,
		postgresDB,
		redisDB,
		port,
		auth,
		privateKeyPath,
		allowedOrigins,
	}
}

func (r Router) Init() error {
	r.HandleMethodNotAllowed = true
	r.Use(middleware.CORSMiddleware(r.allowedOrigins))

	// - postgresql
	userPostgres := user.NewRepository(r.postgresDB)
	departmentPostgres := department.NewRepository(r.postgresDB)
	positionPostgres := position.NewRepository(r.postgresDB)
	officeInfoPostgres := officeinfo.NewRepository(r.postgresDB)
	eventPostgres := event.NewRepository(r.postgresDB)
	remoteRequestPostgres := remoterequest.NewRepository(r.postgresDB)
	leavePostgres := leave.NewRepository(r.postgresDB)
	holidayPostgres := holiday.NewRepository(r.postgresDB)
	taskPostgres := task.NewRepository(r.postgresDB)

	// - redis
	sessions := redisdb.NewSessionStore(r.redisDB)
	cache := redisdb.NewCache(r.redisDB)

	// - services
	reconcilerService := reconciler.NewService(eventPostgres, remoteRequestPostgres, reconciler.SystemClock())

	// controller
	authController := auth_controller.NewController(userPostgres, sessions, r.privateKeyPath)
	userController := user_controller.NewController(userPostgres, departmentPostgres, positionPostgres)
	departmentController := department_controller.NewController(departmentPostgres)
	positionController := position_controller.NewController(positionPostgres)
	officeInfoController := officeinfo_controller.NewController(officeInfoPostgres)
	attendanceController := attendance_controller.NewController(reconcilerService, eventPostgres, officeInfoPostgres, userPostgres, cache)
	remoteRequestController := remoterequest_controller.NewController(remoteRequestPostgres)
	leaveController := leave_controller.NewController(leavePostgres)
	holidayController := holiday_controller.NewController(holidayPostgres)
	taskController := task_controller.NewController(taskPostgres)

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/refresh-token", authController.RefreshToken)
	r.Post("/api/v1/sign-out", authController.SignOut, middleware.Authenticate(r.auth))

	r.Static("/media", "./statics")

	// #user
	r.Get("/api/v1/user/list", userController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/user/export_employee", userController.ExportExcel, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/user/export_badges", userController.ExportBadgesPDF, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/user/qrcode/:employee_id", userController.GetQrCode, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/user/:id", userController.GetDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/user/create", userController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/user/import_excel", userController.ImportExcel, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/user/:id", userController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/user/:id", userController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #department
	r.Get("/api/v1/department/list", departmentController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDashboard))
	r.Get("/api/v1/department/directory", departmentController.Directory, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDashboard))
	r.Get("/api/v1/department/:id", departmentController.GetDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/department/create", departmentController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/department/:id", departmentController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/department/:id", departmentController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #position
	r.Get("/api/v1/position/list", positionController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDashboard))
	r.Get("/api/v1/position/directory", positionController.Directory, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDashboard))
	r.Post("/api/v1/position/create", positionController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/position/:id", positionController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/position/:id", positionController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #office_info
	r.Get("/api/v1/office_info", officeInfoController.Get, middleware.Authenticate(r.auth))
	r.Patch("/api/v1/office_info/:id", officeInfoController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #attendance
	r.Post("/api/v1/attendance/check-in", attendanceController.CheckIn, middleware.Authenticate(r.auth))
	r.Post("/api/v1/attendance/check-out", attendanceController.CheckOut, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/status", attendanceController.GetDailyStatus, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/summary", attendanceController.GetSummary, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/list", attendanceController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDashboard))
	r.Get("/api/v1/attendance/statistics", attendanceController.GetStatistics, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDashboard))
	r.Get("/api/v1/attendance/export_excel", attendanceController.ExportExcel, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/export_pdf", attendanceController.ExportMonthlyPDF, middleware.Authenticate(r.auth))

	// #remote_request
	r.Post("/api/v1/remote-request/create", remoteRequestController.Create, middleware.Authenticate(r.auth))
	r.Get("/api/v1/remote-request/list", remoteRequestController.GetList, middleware.Authenticate(r.auth))
	r.Patch("/api/v1/remote-request/:id/review", remoteRequestController.Review, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/remote-request/:id", remoteRequestController.Delete, middleware.Authenticate(r.auth))

	// #leave
	r.Post("/api/v1/leave/create", leaveController.Create, middleware.Authenticate(r.auth))
	r.Get("/api/v1/leave/list", leaveController.GetList, middleware.Authenticate(r.auth))
	r.Patch("/api/v1/leave/:id/review", leaveController.Review, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/leave/:id", leaveController.Delete, middleware.Authenticate(r.auth))

	// #holiday
	r.Get("/api/v1/holiday/list", holidayController.GetList, middleware.Authenticate(r.auth))
	r.Post("/api/v1/holiday/create", holidayController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/holiday/:id", holidayController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/holiday/:id", holidayController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #task
	r.Get("/api/v1/task/list", taskController.GetList, middleware.Authenticate(r.auth))
	r.Post("/api/v1/task/create", taskController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/task/:id", taskController.UpdateColumns, middleware.Authenticate(r.auth))
	r.Delete("/api/v1/task/:id", taskController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	return r.Run(r.port)
}
