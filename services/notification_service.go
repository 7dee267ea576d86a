package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/eduaid/scholarship-app/models"
	"github.com/eduaid/scholarship-app/utils"
)

// NotificationService owns notification rows. It never mutates a
// notification after creation except the read flag.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// SubmissionNotification derives the payload announcing a successful
// application submission.
func SubmissionNotification(app *models.Application) models.Notification {
	id := app.ID
	return models.Notification{
		UserID:       app.UserID,
		Title:        "Application Submitted",
		Message:      fmt.Sprintf("Your application for %s has been successfully submitted.", app.ScholarshipTitle),
		Type:         models.NotifSuccess,
		Read:         false,
		RelatedAppID: &id,
		Date:         time.Now(),
	}
}

// TransitionNotification derives the payload for a status change. The type
// follows the outcome: success for Accepted, alert for Rejected, info for
// every intermediate stage. The title depends on whether staff supplied a
// custom message.
func TransitionNotification(app *models.Application, status, customMessage string) models.Notification {
	id := app.ID

	title := fmt.Sprintf("Application Status Update: %s", status)
	message := fmt.Sprintf("Your application for %s has been updated to %s.", app.ScholarshipTitle, status)
	if customMessage != "" {
		title = "New Message from Admin"
		message += " Check details for instructions."
	}

	notifType := models.NotifInfo
	switch status {
	case models.StatusAccepted:
		notifType = models.NotifSuccess
	case models.StatusRejected:
		notifType = models.NotifAlert
	}

	return models.Notification{
		UserID:       app.UserID,
		Title:        title,
		Message:      message,
		Type:         notifType,
		Read:         false,
		RelatedAppID: &id,
		Date:         time.Now(),
	}
}

func (s *NotificationService) Create(notif *models.Notification) error {
	return s.db.Create(notif).Error
}

// ForUser returns a user's notifications newest first. The sort is applied
// here so callers never depend on storage order.
func (s *NotificationService) ForUser(userID uint) ([]models.Notification, error) {
	var notifs []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&notifs).Error
	return notifs, err
}

func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flips the read flag on a single notification owned by userID.
func (s *NotificationService) MarkRead(id, userID uint) error {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification owned by userID. Each mark is
// independent: one failure does not stop the rest.
func (s *NotificationService) MarkAllRead(userID uint) error {
	var unread []models.Notification
	if err := s.db.Where("user_id = ? AND is_read = ?", userID, false).Find(&unread).Error; err != nil {
		return err
	}

	var lastErr error
	for _, n := range unread {
		if err := s.db.Model(&models.Notification{}).
			Where("id = ?", n.ID).
			Update("is_read", true).Error; err != nil {
			utils.ErrorLogger.Printf("Failed to mark notification %d read: %v", n.ID, err)
			lastErr = err
		}
	}
	return lastErr
}

func (s *NotificationService) Delete(id, userID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationService) GetByID(id uint) (*models.Notification, error) {
	var notif models.Notification
	if err := s.db.First(&notif, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notif, nil
}
