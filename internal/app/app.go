package app

import (
	"context"
	"gimeldaled_backend/internal/config"
	"gimeldaled_backend/internal/controller"
	"gimeldaled_backend/internal/repository"
	"gimeldaled_backend/internal/service"
	"gimeldaled_backend/pkg/configwatcher"
	"gimeldaled_backend/pkg/database"
	"gimeldaled_backend/pkg/logger"
	"gimeldaled_backend/pkg/monitoring"
	"gimeldaled_backend/pkg/security"
	"gimeldaled_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	// 配置热更新只覆盖可安全替换的运行时参数
	dynamicCfg atomic.Pointer[config.Config]
}

type repositories struct {
	user    *repository.UserRepository
	student *repository.StudentRepository
	report  *repository.WeeklyReportRepository
	plan    *repository.FuturePlanRepository
}

type services struct {
	auth     *service.AuthService
	storage  *service.StorageService
	student  *service.StudentService
	report   *service.ReportService
	plan     *service.PlanService
	user     *service.UserService
	overview *service.OverviewService
}

type controllers struct {
	auth       *controller.AuthController
	tracking   *controller.TrackingController
	teacher    *controller.TeacherController
	permission *controller.PermissionController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:    repository.NewUserRepository(db),
		student: repository.NewStudentRepository(db),
		report:  repository.NewWeeklyReportRepository(db),
		plan:    repository.NewFuturePlanRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, repos.student, cfg)
	s.student = service.NewStudentService(repos.student)
	s.report = service.NewReportService(repos.report, rdb)
	s.plan = service.NewPlanService(repos.plan)
	s.user = service.NewUserService(repos.user)
	s.overview = service.NewOverviewService(repos.student, s.report)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, s.student),
		tracking:   controller.NewTrackingController(s.student, s.report, s.plan, s.storage),
		teacher:    controller.NewTeacherController(s.overview, s.student, s.report, s.plan),
		permission: controller.NewPermissionController(s.user),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) watchConfig() {
	go configwatcher.WatchConfig("configs/config.yaml", func(cfg *config.Config) {
		a.dynamicCfg.Store(cfg)
		logger.Log.Info("Config reloaded",
			zap.String("mode", cfg.Server.Mode),
			zap.Strings("allowedOrigins", cfg.CORS.AllowedOrigins),
		)
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	app.dynamicCfg.Store(cfg)

	if cfg.MigrateOnly {
		return app
	}

	// Redis 不可用时降级为无缓存运行
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, running without report cache", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("gimeldaled", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.watchConfig()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
