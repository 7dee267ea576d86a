package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/eduaid/scholarship-app/controllers"
	"github.com/eduaid/scholarship-app/models"
)

func newUserRouter(db *gorm.DB, caller *models.User) *gin.Engine {
	uc := controllers.NewUserController(db)

	r := newTestEngine()
	r.POST("/register", uc.Register)
	r.POST("/login", uc.Login)

	auth := r.Group("/")
	if caller != nil {
		auth.Use(actAs(caller))
	}
	auth.GET("/profile", uc.GetProfile)
	auth.PATCH("/profile", uc.UpdateProfile)
	auth.POST("/profile/password", uc.ChangePassword)
	auth.DELETE("/profile", uc.DeleteAccount)
	auth.GET("/admin/users", uc.GetAllUsers)
	return r
}

func TestRegisterDefaultsToApplicant(t *testing.T) {
	db := setupTestDB(t)
	r := newUserRouter(db, nil)

	w := doJSON(t, r, "POST", "/register", gin.H{
		"name":     "Jordan Smith",
		"email":    "jordan@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	assert.NoError(t, db.Where("email = ?", "jordan@example.com").First(&user).Error)
	assert.Equal(t, models.RoleApplicant, user.Role)
	assert.NotEqual(t, "password123", user.Password)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	db := setupTestDB(t)
	r := newUserRouter(db, nil)

	w := doJSON(t, r, "POST", "/register", gin.H{
		"name":     "Jordan Smith",
		"email":    "jordan@example.com",
		"password": "password123",
		"role":     "superadmin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	db := setupTestDB(t)
	r := newUserRouter(db, nil)

	w := doJSON(t, r, "POST", "/register", gin.H{
		"name":     "Jordan Smith",
		"email":    "jordan@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginReturnsTokenAndRole(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "staff@example.com", models.RoleStaff)
	r := newUserRouter(db, nil)

	w := doJSON(t, r, "POST", "/login", gin.H{
		"email":    "staff@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, models.RoleStaff, data["user_role"])
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "user@example.com", models.RoleApplicant)
	r := newUserRouter(db, nil)

	w := doJSON(t, r, "POST", "/login", gin.H{
		"email":    "user@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProfileKeepsApplicationSnapshot(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "user@example.com", models.RoleApplicant)
	scholarship := createScholarship(t, db, "STEM Excellence Grant")

	app := seedSubmittedApplication(t, db, user, scholarship)

	r := newUserRouter(db, user)
	w := doJSON(t, r, "PATCH", "/profile", gin.H{
		"name": "Renamed User",
		"profile": gin.H{
			"school_name": "Other College",
			"gpa":         "2.0",
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	assert.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, "Renamed User", updated.Name)
	assert.Equal(t, "Other College", updated.Profile.SchoolName)

	var storedApp models.Application
	assert.NoError(t, db.First(&storedApp, app.ID).Error)
	assert.Equal(t, "State University", models.Profile(storedApp.ProfileSnapshot).SchoolName)
	assert.Equal(t, "Test User", storedApp.ApplicantName)
}

func TestChangePasswordChecksCurrent(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "user@example.com", models.RoleApplicant)
	r := newUserRouter(db, user)

	w := doJSON(t, r, "POST", "/profile/password", gin.H{
		"current_password": "not-the-password",
		"new_password":     "newpassword1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, "POST", "/profile/password", gin.H{
		"current_password": "secret123",
		"new_password":     "newpassword1",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// New password works for login, old one does not.
	login := newUserRouter(db, nil)
	w = doJSON(t, login, "POST", "/login", gin.H{"email": "user@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doJSON(t, login, "POST", "/login", gin.H{"email": "user@example.com", "password": "newpassword1"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteAccountLeavesApplicationsBehind(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "user@example.com", models.RoleApplicant)
	scholarship := createScholarship(t, db, "STEM Excellence Grant")
	seedSubmittedApplication(t, db, user, scholarship)

	r := newUserRouter(db, user)
	w := doJSON(t, r, "DELETE", "/profile", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var users, apps int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Application{}).Count(&apps)
	assert.Equal(t, int64(0), users)
	assert.Equal(t, int64(1), apps)
}

func TestGetAllUsersStaffOnly(t *testing.T) {
	db := setupTestDB(t)
	applicant := createUser(t, db, "applicant@example.com", models.RoleApplicant)
	staff := createUser(t, db, "staff@example.com", models.RoleStaff)

	w := doJSON(t, newUserRouter(db, applicant), "GET", "/admin/users", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, newUserRouter(db, staff), "GET", "/admin/users", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
