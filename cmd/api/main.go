package main

import (
	"log"
	"os"

	_ "backend/api/swagger" // swagger docs
	"backend/internal/database"
	"backend/internal/handler"
	"backend/internal/middleware"
	"backend/internal/notify"
	"backend/internal/repository"
	"backend/internal/repository/memory"
	"backend/internal/service"
	"backend/internal/storage"
	"backend/internal/vision"
	"backend/internal/websocket"
	"backend/internal/workflow"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// stores bundles every repository implementation so the composition root
// picks GORM or memory exactly once and nothing downstream branches on it.
type stores struct {
	users       repository.UserRepository
	sites       repository.SiteRepository
	materials   repository.MaterialRepository
	assessments repository.AssessmentRepository
	approvals   repository.ApprovalRepository
	plans       repository.PlanRepository
	work        repository.WorkAssignmentRepository
	audits      repository.AuditRepository
	statistics  repository.StatisticsRepository
	tx          repository.TransactionManager
}

func buildDemoStores() *stores {
	store := memory.NewStore()
	if err := store.Seed(); err != nil {
		log.Fatalf("Demo seed failed: %v", err)
	}
	log.Println("DEMO_MODE on: using seeded in-memory stores")
	return &stores{
		users:       memory.NewUserRepository(store),
		sites:       memory.NewSiteRepository(store),
		materials:   memory.NewMaterialRepository(store),
		assessments: memory.NewAssessmentRepository(store),
		approvals:   memory.NewApprovalRepository(store),
		plans:       memory.NewPlanRepository(store),
		work:        memory.NewWorkAssignmentRepository(store),
		audits:      memory.NewAuditRepository(store),
		statistics:  memory.NewStatisticsRepository(store),
		tx:          store.TransactionManager(),
	}
}

func buildPostgresStores() *stores {
	dsn := "postgres://" + getenv("DB_USER", "postgres") + ":" + getenv("DB_PASSWORD", "postgres") +
		"@" + getenv("DB_HOST", "localhost") + ":" + getenv("DB_PORT", "5432") +
		"/" + getenv("DB_NAME", "heritage") + "?sslmode=" + getenv("DB_SSLMODE", "disable")

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	return &stores{
		users:       repository.NewUserRepository(db),
		sites:       repository.NewSiteRepository(db),
		materials:   repository.NewMaterialRepository(db),
		assessments: repository.NewAssessmentRepository(db),
		approvals:   repository.NewApprovalRepository(db),
		plans:       repository.NewPlanRepository(db),
		work:        repository.NewWorkAssignmentRepository(db),
		audits:      repository.NewAuditRepository(db),
		statistics:  repository.NewStatisticsRepository(db),
		tx:          repository.NewTransactionManager(db),
	}
}

func buildPhotoStore() storage.PhotoStore {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		return storage.NewLocalStore(getenv("PUBLIC_URL", "http://localhost:8080"))
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
		Secure: os.Getenv("MINIO_USE_SSL") == "true",
	})
	if err != nil {
		log.Fatalf("MinIO client failed: %v", err)
	}
	return storage.NewMinioStore(client, getenv("MINIO_BUCKET", "door-photos"), getenv("MINIO_PUBLIC_URL", "http://"+endpoint))
}

// @title           Heritage Door Assessment API
// @version         1.0
// @description     Condition assessment and sequential approval workflow for heritage doors.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	demoMode := os.Getenv("DEMO_MODE") == "true"

	var st *stores
	if demoMode {
		st = buildDemoStores()
	} else {
		st = buildPostgresStores()
	}

	// Infrastructure adapters
	photoStore := buildPhotoStore()

	var notifier notify.Notifier
	if endpoint := os.Getenv("MAIL_ENDPOINT"); endpoint != "" && !demoMode {
		notifier = notify.NewHTTPNotifier(endpoint, os.Getenv("MAIL_TOKEN"))
	} else {
		notifier = notify.NewNopNotifier()
	}

	analyzer := vision.NewClient(getenv("VISION_ENDPOINT", "http://localhost:9090/analyze"), os.Getenv("VISION_TOKEN"))

	var statsCache *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		statsCache = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Engine/Service -> Handler)
	engine := workflow.NewEngine(st.assessments, st.approvals, st.tx)

	authService := service.NewAuthService(st.users, middleware.GetJWTSecret())
	siteService := service.NewSiteService(st.sites)
	materialService := service.NewMaterialService(st.materials)
	assessmentService := service.NewAssessmentService(st.assessments, st.sites, photoStore, st.audits)
	analysisService := service.NewAnalysisService(st.assessments, analyzer, st.audits)
	planService := service.NewPlanService(st.plans, st.assessments, st.audits)
	approvalService := service.NewApprovalService(engine, st.users, st.assessments, st.audits, notifier, wsHub)
	workService := service.NewWorkService(st.work, st.assessments, st.users, st.audits, notifier, st.tx)
	statisticsService := service.NewStatisticsService(st.statistics, statsCache)
	auditService := service.NewAuditService(st.audits)

	// Initialize Handlers
	authHandler := handler.NewAuthHandler(authService)
	siteHandler := handler.NewSiteHandler(siteService)
	materialHandler := handler.NewMaterialHandler(materialService)
	assessmentHandler := handler.NewAssessmentHandler(assessmentService, analysisService, planService, approvalService)
	approvalHandler := handler.NewApprovalHandler(approvalService)
	workHandler := handler.NewWorkHandler(workService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	authHandler.RegisterRoutes(router.Group(""))
	siteHandler.RegisterRoutes(router.Group(""))
	materialHandler.RegisterRoutes(router.Group(""))
	assessmentHandler.RegisterRoutes(router.Group(""))
	approvalHandler.RegisterRoutes(router.Group(""))
	workHandler.RegisterRoutes(router.Group(""))
	statisticsHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	port := getenv("PORT", "8080")

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
