package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"educonnect_backend/internal/config"
	"educonnect_backend/internal/controller"
	"educonnect_backend/internal/repository"
	"educonnect_backend/internal/service"
	"educonnect_backend/pkg/database"
	"educonnect_backend/pkg/logger"
	"educonnect_backend/pkg/monitoring"
	"educonnect_backend/pkg/security"
	"educonnect_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	test       *repository.TestRepository
	assignment *repository.AssignmentRepository
	poll       *repository.PollRepository
	post       *repository.PostRepository
	resource   *repository.ResourceRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	storage    *service.StorageService
	test       *service.TestService
	assignment *service.AssignmentService
	poll       *service.PollService
	post       *service.PostService
	resource   *service.ResourceService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	test       *controller.TestController
	assignment *controller.AssignmentController
	poll       *controller.PollController
	post       *controller.PostController
	resource   *controller.ResourceController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig fans a freshly loaded config out to registered callbacks.
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config = cfg
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
	logger.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		test:       repository.NewTestRepository(db),
		assignment: repository.NewAssignmentRepository(db),
		poll:       repository.NewPollRepository(db),
		post:       repository.NewPostRepository(db),
		resource:   repository.NewResourceRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	s := &services{
		storage:    storage,
		auth:       service.NewAuthService(repos.user, cfg),
		user:       service.NewUserService(repos.user),
		test:       service.NewTestService(repos.test, rdb),
		assignment: service.NewAssignmentService(repos.assignment),
		poll:       service.NewPollService(repos.poll, rdb),
		post:       service.NewPostService(repos.post),
	}
	s.resource = service.NewResourceService(repos.resource, storage)
	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		test:       controller.NewTestController(s.test),
		assignment: controller.NewAssignmentController(s.assignment, s.storage),
		poll:       controller.NewPollController(s.poll),
		post:       controller.NewPostController(s.post),
		resource:   controller.NewResourceController(s.resource),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("educonnect-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		router.Static("/uploads", cfg.Storage.Local.Dir)
	}

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
