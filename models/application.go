package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

const (
	StatusApplied     = "Applied"
	StatusUnderReview = "Under Review"
	StatusExam        = "Exam"
	StatusInterview   = "Interview"
	StatusAccepted    = "Accepted"
	StatusRejected    = "Rejected"
)

// IsTerminal reports whether no further transition is defined from status.
func IsTerminal(status string) bool {
	return status == StatusAccepted || status == StatusRejected
}

// IsValidStatus reports whether status is one of the pipeline states.
func IsValidStatus(status string) bool {
	switch status {
	case StatusApplied, StatusUnderReview, StatusExam, StatusInterview, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// ProfileSnapshot freezes the applicant profile at submission time. Stored
// as JSON so later profile edits never alter a submitted application.
type ProfileSnapshot Profile

func (p ProfileSnapshot) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	return string(b), err
}

func (p *ProfileSnapshot) Scan(value interface{}) error {
	if value == nil {
		*p = ProfileSnapshot{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	}
	return errors.New("unsupported type for ProfileSnapshot")
}

type Application struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// One application per (user, scholarship) is enforced in the store,
	// not just by a pre-check in the handler.
	UserID        uint `gorm:"not null;uniqueIndex:idx_user_scholarship" json:"user_id"`
	ScholarshipID uint `gorm:"not null;uniqueIndex:idx_user_scholarship" json:"scholarship_id"`

	// Snapshot fields, fixed at submission time.
	ApplicantName    string          `gorm:"type:varchar(255);not null" json:"applicant_name"`
	ApplicantEmail   string          `gorm:"type:varchar(255);not null" json:"applicant_email"`
	ProfileSnapshot  ProfileSnapshot `gorm:"type:text" json:"applicant_profile"`
	ScholarshipTitle string          `gorm:"type:varchar(255);not null" json:"scholarship_title"`
	Sponsor          string          `gorm:"type:varchar(255)" json:"sponsor"`
	DateApplied      time.Time       `gorm:"not null" json:"date_applied"`

	Status       string `gorm:"type:varchar(20);not null;default:'Applied'" json:"status"`
	Remarks      string `gorm:"type:text" json:"remarks,omitempty"`
	AdminMessage string `gorm:"type:text" json:"admin_message,omitempty"`

	Documents []ApplicationDocument `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"documents"`
	History   []TimelineEvent       `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"history"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApplicationDocument is submitted-file metadata, append-only at submission
// time and immutable afterward.
type ApplicationDocument struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ApplicationID uint      `gorm:"not null;index" json:"application_id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Size          string    `gorm:"type:varchar(50)" json:"size"`
	Type          string    `gorm:"type:varchar(20)" json:"type"`
	URL           string    `gorm:"type:varchar(512)" json:"url"`
	DateUploaded  time.Time `gorm:"not null" json:"date_uploaded"`
}

// TimelineEvent is one entry of the application audit log. Rows are only
// ever inserted, so a transition never rewrites prior history.
type TimelineEvent struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ApplicationID uint      `gorm:"not null;index" json:"application_id"`
	Status        string    `gorm:"type:varchar(20);not null" json:"status"`
	Date          time.Time `gorm:"not null" json:"date"`
	Message       string    `gorm:"type:text" json:"message,omitempty"`
}
