package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eduaid/scholarship-app/services"
	"github.com/eduaid/scholarship-app/utils"
)

type NotificationController struct {
	DB     *gorm.DB
	Notifs *services.NotificationService
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db, Notifs: services.NewNotificationService(db)}
}

// GetMyNotifications -> the caller's notifications, newest first.
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	notifs, err := nc.Notifs.ForUser(userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	unread, err := nc.Notifs.UnreadCount(userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "My notifications", gin.H{
		"notifications": notifs,
		"unread_count":  unread,
	})
}

// MarkRead flips the read flag on one of the caller's notifications.
func (nc *NotificationController) MarkRead(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param("notif_id"))

	if err := nc.Notifs.MarkRead(uint(id), userID); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification marked read", gin.H{"notif_id": id})
}

// MarkAllRead marks every unread notification of the caller.
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	if err := nc.Notifs.MarkAllRead(userID); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All notifications marked read", nil)
}

// DeleteNotification removes one of the caller's notifications.
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param("notif_id"))

	if err := nc.Notifs.Delete(uint(id), userID); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification deleted", gin.H{"notif_id": id})
}
