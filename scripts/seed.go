package main

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/models"
)

func main() {
	db, err := gorm.Open(sqlite.Open("trackmyscore.db"), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Batch{},
		&models.Paper{},
		&models.Student{},
		&models.StudentMark{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	users := []struct {
		username string
		password string
		first    string
		last     string
		role     models.Role
	}{
		{"admin", "admin12345", "Site", "Admin", models.RoleAdmin},
		{"staff_meera", "staff12345", "Meera", "Nair", models.RoleStaff},
		{"S2023001", "student12345", "Alice", "Thomas", models.RoleStudent},
		{"S2023002", "student12345", "Bob", "Mathew", models.RoleStudent},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", u.username, err)
		}
		user := models.User{
			ID:           uuid.New(),
			Username:     u.username,
			FirstName:    u.first,
			LastName:     u.last,
			PasswordHash: string(hash),
			Role:         u.role,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Failed to create user %s: %v", u.username, err)
		}
	}

	mca := models.Course{Name: "Master of Computer Applications", CourseID: "MCA-FT"}
	if err := db.Create(&mca).Error; err != nil {
		log.Printf("Failed to create course %s: %v", mca.CourseID, err)
	}
	bca := models.Course{Name: "Bachelor of Computer Applications", CourseID: "BCA-FT"}
	if err := db.Create(&bca).Error; err != nil {
		log.Printf("Failed to create course %s: %v", bca.CourseID, err)
	}

	mcaBatch := models.Batch{CourseID: mca.ID, Name: "2023-A", Year: "2023-2025", IsActive: true}
	if err := db.Create(&mcaBatch).Error; err != nil {
		log.Printf("Failed to create batch %s: %v", mcaBatch.Name, err)
	}
	bcaBatch := models.Batch{CourseID: bca.ID, Name: "2023-A", Year: "2023-2026", IsActive: true}
	if err := db.Create(&bcaBatch).Error; err != nil {
		log.Printf("Failed to create batch %s: %v", bcaBatch.Name, err)
	}

	papers := []models.Paper{
		{Code: "MCA101", Name: "Programming Fundamentals I", PaperType: "Core", MaxMarks: 100},
		{Code: "MCA102", Name: "Data Structures", PaperType: "Core", MaxMarks: 100},
		{Code: "MCA103", Name: "Database Systems Lab", PaperType: "Lab", MaxMarks: 50},
	}
	for i := range papers {
		if err := db.Create(&papers[i]).Error; err != nil {
			log.Printf("Failed to create paper %s: %v", papers[i].Code, err)
		}
	}

	aliceEmail := "alice.thomas@example.com"
	students := []models.Student{
		{BatchID: mcaBatch.ID, Regno: "S2023001", Name: "Alice Thomas", Email: &aliceEmail, IsActive: true},
		{BatchID: mcaBatch.ID, Regno: "S2023002", Name: "Bob Mathew", IsActive: true},
	}
	for i := range students {
		if err := db.Create(&students[i]).Error; err != nil {
			log.Printf("Failed to create student %s: %v", students[i].Regno, err)
		}
	}

	marks := []models.StudentMark{
		{StudentID: students[0].ID, PaperID: papers[0].ID, ExamType: "Internal-I", BatchID: mcaBatch.ID, Marks: 78},
		{StudentID: students[0].ID, PaperID: papers[0].ID, ExamType: "Internal-II", BatchID: mcaBatch.ID, Marks: 84.5},
		{StudentID: students[0].ID, PaperID: papers[1].ID, ExamType: "Internal-I", BatchID: mcaBatch.ID, Marks: 62},
		{StudentID: students[0].ID, PaperID: papers[2].ID, ExamType: "External", BatchID: mcaBatch.ID, Marks: 41},
		{StudentID: students[1].ID, PaperID: papers[0].ID, ExamType: "Internal-I", BatchID: mcaBatch.ID, Marks: 30},
		{StudentID: students[1].ID, PaperID: papers[1].ID, ExamType: "Internal-I", BatchID: mcaBatch.ID, Marks: 55.25},
	}
	for i := range marks {
		if err := db.Create(&marks[i]).Error; err != nil {
			log.Printf("Failed to create mark entry: %v", err)
		}
	}

	fmt.Println("Seed data created:")
	fmt.Printf("  users: %d (admin, staff, 2 students)\n", len(users))
	fmt.Printf("  courses: 2, batches: 2, papers: %d\n", len(papers))
	fmt.Printf("  students: %d, marks: %d\n", len(students), len(marks))
}
