package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/config"
	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/handlers"
	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/models"
	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/repository"
	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/services"
	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewDatabase(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.CreateDefaultAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Printf("Failed to create default admin: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db.DB)
	courseRepo := repository.NewCourseRepository(db.DB)
	batchRepo := repository.NewBatchRepository(db.DB)
	paperRepo := repository.NewPaperRepository(db.DB)
	studentRepo := repository.NewStudentRepository(db.DB)
	markRepo := repository.NewMarkRepository(db.DB)

	// Services
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiration)
	courseService := services.NewCourseService(courseRepo, batchRepo)
	batchService := services.NewBatchService(batchRepo, courseRepo, studentRepo, markRepo)
	paperService := services.NewPaperService(paperRepo, markRepo)
	studentService := services.NewStudentService(studentRepo, batchRepo)
	markService := services.NewMarkService(markRepo, studentRepo, paperRepo, batchRepo)
	statsService := services.NewStatsService(markRepo)
	exportService := services.NewExportService(courseRepo, batchRepo, paperRepo, studentRepo, markRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	courseHandler := handlers.NewCourseHandler(courseService)
	batchHandler := handlers.NewBatchHandler(batchService)
	paperHandler := handlers.NewPaperHandler(paperService)
	studentHandler := handlers.NewStudentHandler(studentService)
	markHandler := handlers.NewMarkHandler(markService, studentService)
	dashboardHandler := handlers.NewDashboardHandler(studentService, statsService)
	exportHandler := handlers.NewExportHandler(exportService)

	router := gin.Default()

	api := router.Group("/api")

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	// Any authenticated identity: reads, listings, exports, own marks
	protected := api.Group("/")
	protected.Use(handlers.AuthMiddleware(authService))
	{
		protected.GET("/profile", authHandler.Profile)

		protected.GET("/courses", courseHandler.List)
		protected.GET("/courses/:id", courseHandler.Get)
		protected.GET("/batches", batchHandler.List)
		protected.GET("/batches/:id", batchHandler.Get)
		protected.GET("/papers", paperHandler.List)
		protected.GET("/papers/:id", paperHandler.Get)
		protected.GET("/students", studentHandler.List)
		protected.GET("/students/:id", studentHandler.Get)
		protected.GET("/marks", markHandler.List)
		protected.GET("/marks/my", markHandler.MyMarks)
		protected.GET("/marks/:id", markHandler.Get)

		protected.GET("/export/courses", exportHandler.Courses)
		protected.GET("/export/batches", exportHandler.Batches)
		protected.GET("/export/papers", exportHandler.Papers)
		protected.GET("/export/students", exportHandler.Students)
		protected.GET("/export/marks", exportHandler.Marks)
	}

	// Student dashboard
	student := api.Group("/")
	student.Use(handlers.AuthMiddleware(authService))
	student.Use(handlers.RequireRoles(models.RoleStudent))
	{
		student.GET("/dashboard", dashboardHandler.Dashboard)
	}

	// Create/update: admin and staff
	staff := api.Group("/")
	staff.Use(handlers.AuthMiddleware(authService))
	staff.Use(handlers.RequireRoles(models.RoleAdmin, models.RoleStaff))
	{
		staff.POST("/courses", courseHandler.Create)
		staff.PUT("/courses/:id", courseHandler.Update)
		staff.POST("/batches", batchHandler.Create)
		staff.PUT("/batches/:id", batchHandler.Update)
		staff.POST("/papers", paperHandler.Create)
		staff.PUT("/papers/:id", paperHandler.Update)
		staff.POST("/students", studentHandler.Create)
		staff.PUT("/students/:id", studentHandler.Update)
		staff.POST("/marks", markHandler.Create)
		staff.PUT("/marks/:id", markHandler.Update)
	}

	// Deletes and user management: admin only
	admin := api.Group("/")
	admin.Use(handlers.AuthMiddleware(authService))
	admin.Use(handlers.RequireRoles(models.RoleAdmin))
	{
		admin.POST("/admin/users", authHandler.AdminCreateUser)
		admin.DELETE("/courses/:id", courseHandler.Delete)
		admin.DELETE("/batches/:id", batchHandler.Delete)
		admin.DELETE("/papers/:id", paperHandler.Delete)
		admin.DELETE("/students/:id", studentHandler.Delete)
		admin.DELETE("/marks/:id", markHandler.Delete)
	}

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	log.Printf("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
