package main

import (
	"log"
	"os"

	_ "agriportal/api/swagger" // swagger docs
	"agriportal/internal/database"
	"agriportal/internal/handler"
	"agriportal/internal/middleware"
	"agriportal/internal/repository"
	"agriportal/internal/service"
	"agriportal/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Agricultural Enforcement Portal API
// @version         1.0
// @description     Case tracking for agricultural enforcement: inspection planning, field executions, seizures, lab samples and FIR cases, behind menu-level role permissions.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	if err := database.Seed(db); err != nil {
		log.Fatalf("Database seeding failed: %v", err)
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	inspectionRepo := repository.NewInspectionRepository(db)
	fieldRepo := repository.NewFieldExecutionRepository(db)
	seizureRepo := repository.NewSeizureRepository(db)
	sampleRepo := repository.NewLabSampleRepository(db)
	firRepo := repository.NewFIRCaseRepository(db)
	reportRepo := repository.NewReportRepository(db)

	permService := service.NewPermissionService(roleRepo, auditRepo, txManager)
	guard := service.NewOwnershipGuard(permService)
	userService := service.NewUserService(userRepo, roleRepo)
	roleService := service.NewRoleService(roleRepo, auditRepo)
	auditService := service.NewAuditService(auditRepo)
	reportService := service.NewReportService(reportRepo)
	inspectionService := service.NewInspectionService(inspectionRepo, fieldRepo, guard, auditRepo, wsHub)
	fieldService := service.NewFieldExecutionService(fieldRepo, inspectionRepo, seizureRepo, guard, auditRepo, wsHub)
	seizureService := service.NewSeizureService(seizureRepo, fieldRepo, sampleRepo, firRepo, guard, auditRepo, wsHub)
	sampleService := service.NewLabSampleService(sampleRepo, seizureRepo, firRepo, guard, auditRepo, wsHub)
	firService := service.NewFIRCaseService(firRepo, sampleRepo, seizureRepo, guard, auditRepo, wsHub)

	authMW := middleware.NewAuthMiddleware(permService)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService, permService)
	roleHandler := handler.NewRoleHandler(roleService, permService)
	auditHandler := handler.NewAuditHandler(auditService)
	reportHandler := handler.NewReportHandler(reportService)
	inspectionHandler := handler.NewInspectionHandler(inspectionService)
	fieldHandler := handler.NewFieldExecutionHandler(fieldService)
	seizureHandler := handler.NewSeizureHandler(seizureService)
	sampleHandler := handler.NewLabSampleHandler(sampleService)
	firHandler := handler.NewFIRCaseHandler(firService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
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
	api := router.Group("/api")
	userHandler.RegisterRoutes(api, authMW)
	roleHandler.RegisterRoutes(api, authMW)
	auditHandler.RegisterRoutes(api, authMW)
	reportHandler.RegisterRoutes(api, authMW)
	inspectionHandler.RegisterRoutes(api, authMW)
	fieldHandler.RegisterRoutes(api, authMW)
	seizureHandler.RegisterRoutes(api, authMW)
	sampleHandler.RegisterRoutes(api, authMW)
	firHandler.RegisterRoutes(api, authMW)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
