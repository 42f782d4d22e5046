package main

import (
	"fmt"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/config"
	appHTTP "github.com/attendly/attendance-backend-go/internal/handler/http"
	"github.com/attendly/attendance-backend-go/internal/pkg/cron"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
	"github.com/attendly/attendance-backend-go/internal/pkg/oauth"
	"github.com/attendly/attendance-backend-go/internal/pkg/sse"
	"github.com/attendly/attendance-backend-go/internal/repository/postgresql"
	allowedIPService "github.com/attendly/attendance-backend-go/internal/service/allowedip"
	attendanceService "github.com/attendly/attendance-backend-go/internal/service/attendance"
	authService "github.com/attendly/attendance-backend-go/internal/service/auth"
	deviceService "github.com/attendly/attendance-backend-go/internal/service/device"
	employeeService "github.com/attendly/attendance-backend-go/internal/service/employee"
	reportService "github.com/attendly/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	allowedIPRepo := postgresql.NewAllowedIPRepository(db)
	deviceRepo := postgresql.NewDeviceRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	hub := sse.NewHub()

	allowedIPSvc := allowedIPService.NewAllowedIPService(db, allowedIPRepo, cfg.IPAllowlist.FailOpen)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, allowedIPSvc, hub)
	authSvc := authService.NewAuthService(db, userRepo, deviceRepo, jwtService, jwtRepo, googleService)
	employeeSvc := employeeService.NewEmployeeService(db, userRepo)
	deviceSvc := deviceService.NewDeviceService(db, deviceRepo)
	reportSvc := reportService.NewReportService(db, attendanceRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	allowedIPHandler := appHTTP.NewAllowedIPHandler(allowedIPSvc)
	deviceHandler := appHTTP.NewDeviceHandler(deviceSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	eventsHandler := appHTTP.NewEventsHandler(jwtService, hub)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc).Register(scheduler, cfg.Cron.RepairInterval)
	cron.NewTokenJobs(jwtRepo).Register(scheduler, cfg.Cron.PurgeInterval)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:     "attendance-backend",
			AppVersion:  "v1.0.0",
			Environment: cfg.App.Env,
			FrontendURL: cfg.App.FrontendURL,
		},
		jwtService,
		authHandler,
		attendanceHandler,
		employeeHandler,
		allowedIPHandler,
		deviceHandler,
		reportHandler,
		eventsHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
