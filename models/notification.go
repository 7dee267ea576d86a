package models

import "time"

const (
	NotifInfo    = "info"
	NotifSuccess = "success"
	NotifWarning = "warning"
	NotifAlert   = "alert"
)

type Notification struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	Title   string `gorm:"type:varchar(100);not null" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`
	Type    string `gorm:"type:varchar(20);not null;default:'info'" json:"type"`
	Read    bool   `gorm:"column:is_read;not null;default:false" json:"read"`

	// Not a foreign key: the notification outlives its application, and a
	// deleted application leaves a dangling reference here. Consumers
	// resolve it leniently.
	RelatedAppID *uint `json:"related_app_id,omitempty"`

	Date time.Time `gorm:"not null;index" json:"date"`
}
