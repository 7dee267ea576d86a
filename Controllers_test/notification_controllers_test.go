package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/eduaid/scholarship-app/controllers"
	"github.com/eduaid/scholarship-app/models"
)

func newNotificationRouter(db *gorm.DB, caller *models.User) *gin.Engine {
	nc := controllers.NewNotificationController(db)

	r := newTestEngine()
	r.Use(actAs(caller))
	r.GET("/notifications", nc.GetMyNotifications)
	r.PATCH("/notifications/:notif_id/read", nc.MarkRead)
	r.POST("/notifications/read-all", nc.MarkAllRead)
	r.DELETE("/notifications/:notif_id", nc.DeleteNotification)
	return r
}

func seedNotification(t *testing.T, db *gorm.DB, userID uint, title string, date time.Time) *models.Notification {
	t.Helper()
	n := &models.Notification{
		UserID:  userID,
		Type:    models.NotifInfo,
		Title:   title,
		Message: "message for " + title,
		Date:    date,
	}
	if err := db.Create(n).Error; err != nil {
		t.Fatalf("failed to create notification: %v", err)
	}
	return n
}

func TestGetMyNotificationsWithUnreadCount(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "user@example.com", models.RoleApplicant)
	stranger := createUser(t, db, "stranger@example.com", models.RoleApplicant)

	now := time.Now()
	seedNotification(t, db, user.ID, "Older", now.Add(-time.Hour))
	seedNotification(t, db, user.ID, "Newer", now)
	seedNotification(t, db, stranger.ID, "Not yours", now)

	r := newNotificationRouter(db, user)
	w := doJSON(t, r, "GET", "/notifications", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.EqualValues(t, 2, data["unread_count"])

	notifs, ok := data["notifications"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, notifs, 2)

	first, _ := notifs[0].(map[string]interface{})
	assert.Equal(t, "Newer", first["title"])
}

func TestMarkNotificationRead(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "user@example.com", models.RoleApplicant)
	n := seedNotification(t, db, user.ID, "Application Status Update: Exam", time.Now())

	r := newNotificationRouter(db, user)
	w := doJSON(t, r, "PATCH", fmt.Sprintf("/notifications/%d/read", n.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Notification
	assert.NoError(t, db.First(&stored, n.ID).Error)
	assert.True(t, stored.Read)
}

func TestMarkNotificationReadRejectsOtherUsers(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, db, "owner@example.com", models.RoleApplicant)
	intruder := createUser(t, db, "intruder@example.com", models.RoleApplicant)
	n := seedNotification(t, db, owner.ID, "Private", time.Now())

	r := newNotificationRouter(db, intruder)
	w := doJSON(t, r, "PATCH", fmt.Sprintf("/notifications/%d/read", n.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var stored models.Notification
	assert.NoError(t, db.First(&stored, n.ID).Error)
	assert.False(t, stored.Read)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "user@example.com", models.RoleApplicant)
	stranger := createUser(t, db, "stranger@example.com", models.RoleApplicant)

	seedNotification(t, db, user.ID, "One", time.Now())
	seedNotification(t, db, user.ID, "Two", time.Now())
	other := seedNotification(t, db, stranger.ID, "Theirs", time.Now())

	r := newNotificationRouter(db, user)
	w := doJSON(t, r, "POST", "/notifications/read-all", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var unread int64
	db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", user.ID, false).Count(&unread)
	assert.Equal(t, int64(0), unread)

	var theirs models.Notification
	assert.NoError(t, db.First(&theirs, other.ID).Error)
	assert.False(t, theirs.Read)
}

func TestDeleteNotification(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "user@example.com", models.RoleApplicant)
	n := seedNotification(t, db, user.ID, "Disposable", time.Now())

	r := newNotificationRouter(db, user)
	w := doJSON(t, r, "DELETE", fmt.Sprintf("/notifications/%d", n.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// Deleting again is a 404, not a silent no-op.
	w = doJSON(t, r, "DELETE", fmt.Sprintf("/notifications/%d", n.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
