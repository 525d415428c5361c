package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicore/hms-api/config"
	"github.com/medicore/hms-api/internal/cache"
	"github.com/medicore/hms-api/internal/email"
	"github.com/medicore/hms-api/internal/handler"
	adminhandler "github.com/medicore/hms-api/internal/handler/admin"
	appointmenthandler "github.com/medicore/hms-api/internal/handler/appointment"
	authhandler "github.com/medicore/hms-api/internal/handler/auth"
	departmenthandler "github.com/medicore/hms-api/internal/handler/department"
	doctorhandler "github.com/medicore/hms-api/internal/handler/doctor"
	patienthandler "github.com/medicore/hms-api/internal/handler/patient"
	"github.com/medicore/hms-api/internal/middleware"
	"github.com/medicore/hms-api/internal/repository/postgres"
	"github.com/medicore/hms-api/internal/router"
	appointmentsvc "github.com/medicore/hms-api/internal/service/appointment"
	authsvc "github.com/medicore/hms-api/internal/service/auth"
	availabilitysvc "github.com/medicore/hms-api/internal/service/availability"
	departmentsvc "github.com/medicore/hms-api/internal/service/department"
	doctorsvc "github.com/medicore/hms-api/internal/service/doctor"
	statssvc "github.com/medicore/hms-api/internal/service/stats"
	treatmentsvc "github.com/medicore/hms-api/internal/service/treatment"
	"github.com/medicore/hms-api/pkg/auth"
	"github.com/medicore/hms-api/pkg/logger"
	"github.com/medicore/hms-api/pkg/metrics"
	"github.com/medicore/hms-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	appLogger := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.LogPretty,
	})
	log := appLogger.Zerolog()

	db, err := postgres.NewDB(cfg.Database.ToPostgresConfig())
	if err != nil {
		appLogger.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	cacheSvc, err := cache.NewRedisCache(cfg.Redis.ToCacheConfig())
	if err != nil {
		appLogger.Fatal(err, "failed to connect to Redis")
	}
	defer cacheSvc.Close()

	var emailSvc email.Service = email.NoopService{}
	if cfg.SMTP.Enabled {
		emailSvc = email.NewSMTPService(cfg.SMTP.ToEmailConfig())
	}

	m := metrics.NewMetrics("hms", "api")

	userRepo := postgres.NewUserRepository(db)
	departmentRepo := postgres.NewDepartmentRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	availabilityRepo := postgres.NewAvailabilityRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	treatmentRepo := postgres.NewTreatmentRepository(db)
	statsRepo := postgres.NewStatsRepository(db)

	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Expiry:        cfg.JWT.Expiry,
		RefreshExpiry: cfg.JWT.RefreshExpiry,
	})
	hasher := security.NewBcryptHasher(0)

	authService := authsvc.NewService(userRepo, jwtSvc, hasher, emailSvc, cacheSvc, cfg.JWT.Expiry)
	departmentService := departmentsvc.NewService(departmentRepo)
	doctorService := doctorsvc.NewService(doctorRepo, departmentRepo, appointmentRepo, availabilityRepo, hasher)
	availabilityService := availabilitysvc.NewService(availabilityRepo, cacheSvc)
	appointmentService := appointmentsvc.NewService(appointmentRepo, availabilityRepo, userRepo, emailSvc, cacheSvc, m)
	treatmentService := treatmentsvc.NewService(treatmentRepo, appointmentRepo)
	statsService := statssvc.NewService(statsRepo)

	if err := bootstrap(cfg, authService, departmentService); err != nil {
		appLogger.Fatal(err, "bootstrap failed")
	}

	authMiddleware := middleware.NewAuthMiddleware(authService)

	handlers := router.Handlers{
		Health:      handler.NewHealthHandler(db, cacheSvc),
		Auth:        authhandler.NewHandler(authService, authMiddleware),
		Department:  departmenthandler.NewHandler(departmentService, authMiddleware),
		Doctor:      doctorhandler.NewHandler(doctorService, availabilityService, appointmentService, authMiddleware),
		Appointment: appointmenthandler.NewHandler(appointmentService, treatmentService, authMiddleware),
		Patient:     patienthandler.NewHandler(appointmentService, authMiddleware),
		Admin:       adminhandler.NewHandler(statsService, authMiddleware),
	}

	routerCfg := router.Config{
		Logger:         *log,
		RequestTimeout: cfg.Server.RequestTimeout,
		AllowedOrigins: cfg.Security.AllowedOrigins,
	}
	if cfg.RateLimit.Enabled {
		routerCfg.RateLimit = cfg.RateLimit.RequestsPerSecond
		routerCfg.RateBurst = cfg.RateLimit.Burst
	}
	engine := router.New(routerCfg, handlers)

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        engine,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error(err, "forced shutdown")
	}
	appLogger.Info("server stopped")
}

// bootstrap seeds the admin account and the default department catalog on
// first start.
func bootstrap(cfg *config.Config, authService *authsvc.Service, departmentService *departmentsvc.Service) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if cfg.Bootstrap.AdminPassword != "" {
		if err := authService.EnsureAdmin(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword); err != nil {
			return fmt.Errorf("failed to ensure admin: %w", err)
		}
	}
	if cfg.Bootstrap.SeedCatalog {
		if err := departmentService.EnsureDefaults(ctx); err != nil {
			return fmt.Errorf("failed to seed departments: %w", err)
		}
	}
	return nil
}
