package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/eduaid/scholarship-app/models"
	"github.com/eduaid/scholarship-app/utils"
)

// nextStage is the default forward progression offered to staff. Terminal
// states are reachable from any non-terminal state even in strict mode.
var nextStage = map[string]string{
	models.StatusApplied:     models.StatusUnderReview,
	models.StatusUnderReview: models.StatusExam,
	models.StatusExam:        models.StatusInterview,
}

// ApplicationService owns the application lifecycle: submission with its
// duplicate guard, status transitions with their audit trail, deletion and
// the scholarship cascade. Every successful Submit and Transition also
// creates exactly one notification for the owning user; that write is
// best-effort and never rolls back the application write.
type ApplicationService struct {
	db     *gorm.DB
	notifs *NotificationService
	strict bool

	// Serializes transitions per application so concurrent staff updates
	// cannot interleave their read-append-write of the audit trail.
	lockMu sync.Mutex
	locks  map[uint]*sync.Mutex
}

func NewApplicationService(db *gorm.DB, strict bool) *ApplicationService {
	return &ApplicationService{
		db:     db,
		notifs: NewNotificationService(db),
		strict: strict,
		locks:  make(map[uint]*sync.Mutex),
	}
}

func (s *ApplicationService) appLock(id uint) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	if l, ok := s.locks[id]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.locks[id] = l
	return l
}

// Submit creates an application for user against scholarship. The profile,
// name and email are snapshotted so later edits never alter the submitted
// record. At most one application may exist per (user, scholarship); the
// composite unique index backs the pre-check so a concurrent double submit
// still fails cleanly.
func (s *ApplicationService) Submit(user *models.User, scholarship *models.Scholarship, statement string, documents []models.ApplicationDocument) (*models.Application, error) {
	now := time.Now()

	remarks := statement
	if remarks == "" {
		remarks = "Application submitted successfully."
	}

	app := &models.Application{
		UserID:           user.ID,
		ScholarshipID:    scholarship.ID,
		ApplicantName:    user.DisplayName(),
		ApplicantEmail:   user.Email,
		ProfileSnapshot:  models.ProfileSnapshot(user.Profile),
		ScholarshipTitle: scholarship.Title,
		Sponsor:          scholarship.Sponsor,
		DateApplied:      now,
		Status:           models.StatusApplied,
		Remarks:          remarks,
		Documents:        documents,
		History: []models.TimelineEvent{
			{Status: models.StatusApplied, Date: now, Message: "Application submitted."},
		},
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Application{}).
			Where("user_id = ? AND scholarship_id = ?", user.ID, scholarship.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateApplication
		}
		return tx.Create(app).Error
	})
	if err != nil {
		if isDuplicateKeyErr(err) {
			return nil, ErrDuplicateApplication
		}
		return nil, err
	}

	s.createNotification(SubmissionNotification(app))

	utils.InfoLogger.Printf("Application %d submitted by user %d for scholarship %d", app.ID, user.ID, scholarship.ID)
	return app, nil
}

// Transition moves an application to newStatus, appends the audit entry and
// overwrites the admin message. When message is empty a default description
// is generated. Applications of deleted accounts are frozen.
func (s *ApplicationService) Transition(appID uint, newStatus, message string) (*models.Application, error) {
	if !models.IsValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	lock := s.appLock(appID)
	lock.Lock()
	defer lock.Unlock()

	var app models.Application
	if err := s.db.Preload("History").First(&app, appID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	var ownerCount int64
	if err := s.db.Model(&models.User{}).Where("id = ?", app.UserID).Count(&ownerCount).Error; err != nil {
		return nil, err
	}
	if ownerCount == 0 {
		return nil, ErrAccountDeleted
	}

	if s.strict {
		if err := checkLinearProgression(app.Status, newStatus); err != nil {
			return nil, err
		}
	}

	custom := strings.TrimSpace(message)
	if custom == "" {
		message = fmt.Sprintf("Status updated to %s", newStatus)
	}

	now := time.Now()
	event := models.TimelineEvent{
		ApplicationID: app.ID,
		Status:        newStatus,
		Date:          now,
		Message:       message,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		return tx.Model(&models.Application{}).
			Where("id = ?", app.ID).
			Updates(map[string]interface{}{
				"status":        newStatus,
				"admin_message": message,
				"updated_at":    now,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	app.Status = newStatus
	app.AdminMessage = message
	app.History = append(app.History, event)

	s.createNotification(TransitionNotification(&app, newStatus, custom))

	utils.InfoLogger.Printf("Application %d transitioned to %s", app.ID, newStatus)
	return &app, nil
}

func checkLinearProgression(current, next string) error {
	if models.IsTerminal(current) {
		return ErrInvalidTransition
	}
	if models.IsTerminal(next) {
		return nil
	}
	if nextStage[current] != next {
		return ErrInvalidTransition
	}
	return nil
}

// Delete removes an application and its child rows permanently. Its
// notifications stay behind with a dangling related-app reference.
func (s *ApplicationService) Delete(appID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := tx.First(&app, appID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}
		if err := tx.Where("application_id = ?", appID).Delete(&models.ApplicationDocument{}).Error; err != nil {
			return err
		}
		if err := tx.Where("application_id = ?", appID).Delete(&models.TimelineEvent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Application{}, appID).Error
	})
}

// DeleteScholarshipCascade removes a scholarship and every application
// referencing it in one transaction, so observers never see one without
// the other.
func (s *ApplicationService) DeleteScholarshipCascade(scholarshipID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var scholarship models.Scholarship
		if err := tx.First(&scholarship, scholarshipID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrScholarshipNotFound
			}
			return err
		}

		var appIDs []uint
		if err := tx.Model(&models.Application{}).
			Where("scholarship_id = ?", scholarshipID).
			Pluck("id", &appIDs).Error; err != nil {
			return err
		}

		if len(appIDs) > 0 {
			if err := tx.Where("application_id IN ?", appIDs).Delete(&models.ApplicationDocument{}).Error; err != nil {
				return err
			}
			if err := tx.Where("application_id IN ?", appIDs).Delete(&models.TimelineEvent{}).Error; err != nil {
				return err
			}
			if err := tx.Where("scholarship_id = ?", scholarshipID).Delete(&models.Application{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Scholarship{}, scholarshipID).Error
	})
}

func (s *ApplicationService) GetByID(appID uint) (*models.Application, error) {
	var app models.Application
	err := s.db.Preload("Documents").Preload("History", func(db *gorm.DB) *gorm.DB {
		return db.Order("timeline_events.date ASC, timeline_events.id ASC")
	}).First(&app, appID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (s *ApplicationService) ForUser(userID uint) ([]models.Application, error) {
	var apps []models.Application
	err := s.db.Preload("Documents").Preload("History").
		Where("user_id = ?", userID).
		Order("date_applied DESC").
		Find(&apps).Error
	return apps, err
}

func (s *ApplicationService) All() ([]models.Application, error) {
	var apps []models.Application
	err := s.db.Preload("Documents").Preload("History").
		Order("date_applied DESC").
		Find(&apps).Error
	return apps, err
}

// createNotification is the single best-effort write in the engine: the
// application is the source of truth and must not be lost because a
// notification failed.
func (s *ApplicationService) createNotification(notif models.Notification) {
	if err := s.notifs.Create(&notif); err != nil {
		utils.ErrorLogger.Printf("Notification write failed for user %d (app %v): %v", notif.UserID, notif.RelatedAppID, err)
	}
}

func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
