package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/models"
	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/repository"
	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/services"
)

// testApp is a fully wired router over an in-memory database, mirroring the
// production route layout.
type testApp struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *services.AuthService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// a :memory: database exists per connection, so keep the pool at one
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Course{}, &models.Batch{},
		&models.Paper{}, &models.Student{}, &models.StudentMark{},
	))

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	paperRepo := repository.NewPaperRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	markRepo := repository.NewMarkRepository(db)

	authService := services.NewAuthService(userRepo, "test_secret", time.Hour)
	courseService := services.NewCourseService(courseRepo, batchRepo)
	batchService := services.NewBatchService(batchRepo, courseRepo, studentRepo, markRepo)
	paperService := services.NewPaperService(paperRepo, markRepo)
	studentService := services.NewStudentService(studentRepo, batchRepo)
	markService := services.NewMarkService(markRepo, studentRepo, paperRepo, batchRepo)
	statsService := services.NewStatsService(markRepo)
	exportService := services.NewExportService(courseRepo, batchRepo, paperRepo, studentRepo, markRepo)

	authHandler := NewAuthHandler(authService)
	courseHandler := NewCourseHandler(courseService)
	batchHandler := NewBatchHandler(batchService)
	paperHandler := NewPaperHandler(paperService)
	studentHandler := NewStudentHandler(studentService)
	markHandler := NewMarkHandler(markService, studentService)
	dashboardHandler := NewDashboardHandler(studentService, statsService)
	exportHandler := NewExportHandler(exportService)

	router := gin.New()
	api := router.Group("/api")

	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	protected := api.Group("/")
	protected.Use(AuthMiddleware(authService))
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

	student := api.Group("/")
	student.Use(AuthMiddleware(authService))
	student.Use(RequireRoles(models.RoleStudent))
	{
		student.GET("/dashboard", dashboardHandler.Dashboard)
	}

	staff := api.Group("/")
	staff.Use(AuthMiddleware(authService))
	staff.Use(RequireRoles(models.RoleAdmin, models.RoleStaff))
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

	admin := api.Group("/")
	admin.Use(AuthMiddleware(authService))
	admin.Use(RequireRoles(models.RoleAdmin))
	{
		admin.POST("/admin/users", authHandler.AdminCreateUser)
		admin.DELETE("/courses/:id", courseHandler.Delete)
		admin.DELETE("/batches/:id", batchHandler.Delete)
		admin.DELETE("/papers/:id", paperHandler.Delete)
		admin.DELETE("/students/:id", studentHandler.Delete)
		admin.DELETE("/marks/:id", markHandler.Delete)
	}

	return &testApp{router: router, db: db, auth: authService}
}

// tokenFor creates an account with the given role and returns a live token.
func (a *testApp) tokenFor(t *testing.T, username string, role models.Role) string {
	t.Helper()
	_, err := a.auth.Signup(services.SignupInput{
		Username: username,
		Password: "password123",
		Role:     string(role),
	}, models.RoleAdmin)
	require.NoError(t, err)

	_, token, err := a.auth.Login(username, "password123")
	require.NoError(t, err)
	return token
}

func (a *testApp) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// seedAcademics inserts the usual course / batch / paper / student fixtures.
func (a *testApp) seedAcademics(t *testing.T) (*models.Course, *models.Batch, *models.Paper, *models.Student) {
	t.Helper()
	course := &models.Course{Name: "Master of Computer Applications", CourseID: "MCA-FT"}
	require.NoError(t, a.db.Create(course).Error)
	batch := &models.Batch{CourseID: course.ID, Name: "2023-A", Year: "2023-2025", IsActive: true}
	require.NoError(t, a.db.Create(batch).Error)
	paper := &models.Paper{Code: "MCA101", Name: "Programming Fundamentals I", MaxMarks: 100}
	require.NoError(t, a.db.Create(paper).Error)
	student := &models.Student{BatchID: batch.ID, Regno: "S2023001", Name: "Alice Thomas", IsActive: true}
	require.NoError(t, a.db.Create(student).Error)
	return course, batch, paper, student
}
