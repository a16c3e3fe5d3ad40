package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ehimebase/babybase/docs" // generated swagger docs
	appAuth "github.com/ehimebase/babybase/internal/app/auth"
	appControllers "github.com/ehimebase/babybase/internal/app/controllers"
	appMigrations "github.com/ehimebase/babybase/internal/app/migrations"
	appRepos "github.com/ehimebase/babybase/internal/app/repositories"
	appRoutes "github.com/ehimebase/babybase/internal/app/routes"
	appServices "github.com/ehimebase/babybase/internal/app/services"
	"github.com/ehimebase/babybase/internal/config"
	"github.com/ehimebase/babybase/internal/db"
	appMiddleware "github.com/ehimebase/babybase/internal/middleware"
	"github.com/ehimebase/babybase/internal/pkg/ai"
	pkgAuth "github.com/ehimebase/babybase/internal/pkg/auth"
	"github.com/ehimebase/babybase/internal/pkg/cache"
	"github.com/ehimebase/babybase/internal/pkg/filestorage"
	"github.com/ehimebase/babybase/internal/pkg/helpers"
	"github.com/ehimebase/babybase/internal/pkg/logger"
	"github.com/ehimebase/babybase/internal/pkg/scraper"
	"github.com/ehimebase/babybase/internal/pkg/validation"
	"github.com/ehimebase/babybase/internal/pkg/websocket"
	"github.com/ehimebase/babybase/internal/scheduler"
	"github.com/ehimebase/babybase/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos        *appRepos.Repositories
	JWTService   *pkgAuth.JWTService
	AuthzService *appAuth.AuthorizationService
	FileStorage  *filestorage.LocalStorage
	Redis        *redis.Client // nil when Redis is disabled or unreachable
	Cache        *cache.Cache
	Hub          *websocket.Hub
	Scheduler    *scheduler.Scheduler

	AuthService           *appServices.AuthService
	ProfileService        *appServices.ProfileService
	OrganizationService   *appServices.OrganizationService
	JobService            *appServices.JobService
	InteractionService    *appServices.InteractionService
	ApplicationService    *appServices.ApplicationService
	ScoutService          *appServices.ScoutService
	MediaService          *appServices.MediaService
	CourseService         *appServices.CourseService
	RecommendationService *appServices.RecommendationService
	AIService             *appServices.AIService
	AdminService          *appServices.AdminService

	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", "configs/config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:   logLevel,
		Pretty:  strings.ToLower(cfg.Logging.Format) == "text",
		Service: "babybase-api",
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(dbPool, lgr).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	admin := seed.Admin{Email: cfg.Seed.AdminEmail, Password: cfg.Seed.AdminPassword}
	if err := seed.CreateDefaultData(ctx, dbPool, admin, lgr); err != nil {
		// Seeding problems should not keep the API down
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// SetupRedis connects to Redis. A failed connection is logged and the API runs without a cache.
func SetupRedis(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) *redis.Client {
	client, err := db.NewRedisClient(ctx, cfg)
	if err != nil {
		lgr.Warn().Err(err).Msg("Redis unavailable, caching and generation locks disabled")
		return nil
	}
	if client == nil {
		lgr.Info().Msg("Redis disabled by configuration")
	}
	return client
}

// BuildDependencies initializes repositories, services, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.PublicURL(), filestorage.VideoExtensions)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Redis = SetupRedis(ctx, cfg, lgr)
	deps.Cache = cache.New(deps.Redis, helpers.ParseDuration(cfg.Redis.TTL, 5*time.Minute))

	completer, err := ai.NewClient(ctx, ai.Config{
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		Timeout: helpers.ParseDuration(cfg.AI.Timeout, time.Minute),
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize AI client")
		return nil, err
	}
	if cfg.AI.APIKey == "" {
		lgr.Warn().Msg("AI API key not configured, AI endpoints will return errors")
	}

	pages := scraper.NewFetcher(scraper.Config{
		UserAgent: cfg.Scraper.UserAgent,
		Timeout:   helpers.ParseDuration(cfg.Scraper.Timeout, 15*time.Second),
		MaxChars:  cfg.Scraper.MaxChars,
	})

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.OrganizationRepository)
	deps.Hub = websocket.NewHub(lgr)

	repos := deps.Repos
	deps.AuthService = appServices.NewAuthService(repos.ProfileRepository, deps.JWTService, lgr)
	deps.ProfileService = appServices.NewProfileService(repos.ProfileRepository, lgr)
	deps.OrganizationService = appServices.NewOrganizationService(repos.OrganizationRepository, repos.MediaRepository, deps.AuthzService, lgr)
	deps.JobService = appServices.NewJobService(repos.JobRepository, repos.OrganizationRepository, repos.MediaRepository, deps.AuthzService, lgr)
	deps.InteractionService = appServices.NewInteractionService(repos.InteractionRepository, lgr)
	deps.ApplicationService = appServices.NewApplicationService(repos.ApplicationRepository, deps.JobService, deps.AuthzService, deps.Hub, lgr)
	deps.ScoutService = appServices.NewScoutService(repos.InteractionRepository, repos.ProfileRepository, repos.OrganizationRepository, deps.AuthzService, deps.Hub, lgr)
	deps.MediaService = appServices.NewMediaService(repos.MediaRepository, repos.JobRepository, deps.FileStorage, deps.AuthzService, lgr)
	deps.CourseService = appServices.NewCourseService(repos.CourseRepository, repos.ProgressRepository, repos.RecommendationRepository, lgr)
	deps.RecommendationService = appServices.NewRecommendationService(repos.RecommendationRepository, repos.CourseRepository, repos.ProfileRepository, completer, deps.Cache, lgr)
	deps.AIService = appServices.NewAIService(completer, pages, repos.OrganizationRepository, deps.RecommendationService, lgr)
	deps.AdminService = appServices.NewAdminService(repos.ProfileRepository, repos.OrganizationRepository, repos.JobRepository, deps.Cache, lgr)

	deps.Scheduler = scheduler.New(deps.AdminService, scheduler.Config{
		StatsWarmSpec: cfg.Scheduler.StatsWarmSpec,
		BacklogSpec:   cfg.Scheduler.BacklogSpec,
	}, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:           appControllers.NewAuthController(deps.AuthService, lgr),
		Profile:        appControllers.NewProfileController(deps.ProfileService, lgr),
		Organization:   appControllers.NewOrganizationController(deps.OrganizationService, lgr),
		Job:            appControllers.NewJobController(deps.JobService, lgr),
		Interaction:    appControllers.NewInteractionController(deps.InteractionService, lgr),
		Application:    appControllers.NewApplicationController(deps.ApplicationService, lgr),
		Scout:          appControllers.NewScoutController(deps.ScoutService, lgr),
		Media:          appControllers.NewMediaController(deps.MediaService, lgr),
		Course:         appControllers.NewCourseController(deps.CourseService, lgr),
		Recommendation: appControllers.NewRecommendationController(deps.RecommendationService, lgr),
		AI:             appControllers.NewAIController(deps.AIService, lgr),
		Admin: appControllers.NewAdminController(
			deps.AdminService,
			deps.ProfileService,
			deps.OrganizationService,
			deps.JobService,
			deps.ApplicationService,
			lgr,
		),
		Notifications: websocket.NewHandler(deps.Hub, deps.JWTService, cfg.AllowedOrigins(), lgr),
	}

	return deps, nil
}

// RegisterValidators adds the custom binding rules to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return validation.Register(v)
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger())
	router.MaxMultipartMemory = int64(cfg.Server.MaxUploadMB) << 20

	corsConfig := cors.DefaultConfig()
	if origins := cfg.AllowedOrigins(); len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", appMiddleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{appMiddleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.Static(filestorage.URLPrefix, deps.FileStorage.BasePath())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
