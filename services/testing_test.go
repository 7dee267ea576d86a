package services

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/eduaid/scholarship-app/models"
	"github.com/eduaid/scholarship-app/utils"
)

// setupServiceDB opens a fresh in-memory database migrated with every
// model. Each test gets its own named memory DB so state never leaks.
func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Scholarship{},
		&models.Application{},
		&models.ApplicationDocument{},
		&models.TimelineEvent{},
		&models.Notification{},
		&models.SavedSet{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     "Test Applicant",
		Email:    email,
		Password: "hashed",
		Role:     models.RoleApplicant,
		Profile: models.Profile{
			EducationLevel: "Undergraduate",
			SchoolName:     "State University",
			Major:          "Computer Science",
			GPA:            "3.8",
			IncomeRange:    "Below 20k",
			Location:       "Manila",
		},
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedScholarship(t *testing.T, db *gorm.DB, title string) *models.Scholarship {
	t.Helper()
	scholarship := &models.Scholarship{
		Title:      title,
		Sponsor:    "Acme Foundation",
		Amount:     "$5,000",
		Deadline:   "Dec 31, 2026",
		Category:   "Merit",
		DatePosted: time.Now(),
	}
	if err := db.Create(scholarship).Error; err != nil {
		t.Fatalf("failed to seed scholarship: %v", err)
	}
	return scholarship
}
