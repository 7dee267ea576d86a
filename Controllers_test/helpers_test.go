package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/eduaid/scholarship-app/models"
	"github.com/eduaid/scholarship-app/services"
	"github.com/eduaid/scholarship-app/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
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

func createUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	user := &models.User{
		Name:     "Test User",
		Email:    email,
		Password: string(hashed),
		Role:     role,
		Profile: models.Profile{
			EducationLevel: "Undergraduate",
			SchoolName:     "State University",
			Major:          "Computer Science",
			GPA:            "3.8",
		},
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createScholarship(t *testing.T, db *gorm.DB, title string) *models.Scholarship {
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
		t.Fatalf("failed to create scholarship: %v", err)
	}
	return scholarship
}

func seedSubmittedApplication(t *testing.T, db *gorm.DB, user *models.User, scholarship *models.Scholarship) *models.Application {
	t.Helper()
	app, err := services.NewApplicationService(db, false).Submit(user, scholarship, "", nil)
	if err != nil {
		t.Fatalf("failed to submit application: %v", err)
	}
	return app
}

// actAs injects the authenticated caller the way the auth middleware would.
func actAs(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", user.ID)
		c.Set("role", user.Role)
		c.Next()
	}
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doJSON(t *testing.T, r *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(payload)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	data, _ := resp["data"].(map[string]interface{})
	return data
}

// multipartSubmission builds the multipart body for an application submit.
func multipartSubmission(t *testing.T, scholarshipID uint, statement string, fileNames []string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	mw.WriteField("scholarship_id", fmt.Sprintf("%d", scholarshipID))
	if statement != "" {
		mw.WriteField("statement", statement)
	}
	for _, name := range fileNames {
		part, err := mw.CreateFormFile("documents", name)
		if err != nil {
			t.Fatalf("failed to create file part: %v", err)
		}
		part.Write([]byte("test file contents"))
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return body, mw.FormDataContentType()
}
