package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringList is stored as a JSON array in a text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("unsupported type for StringList")
}

type Scholarship struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`
	Sponsor      string     `gorm:"type:varchar(255);not null" json:"sponsor"`
	Amount       string     `gorm:"type:varchar(100)" json:"amount"`
	Deadline     string     `gorm:"type:varchar(50)" json:"deadline"`
	Category     string     `gorm:"type:varchar(50)" json:"category"`
	Description  string     `gorm:"type:text" json:"description"`
	Tags         StringList `gorm:"type:text" json:"tags"`
	Eligibility  StringList `gorm:"type:text" json:"eligibility"`
	Requirements StringList `gorm:"type:text" json:"requirements"`
	MatchScore   int        `json:"match_score"`
	IsUrgent     bool       `json:"is_urgent"`
	Location     string     `gorm:"type:varchar(255)" json:"location,omitempty"`
	LogoURL      string     `gorm:"type:varchar(512)" json:"logo_url,omitempty"`
	WebsiteURL   string     `gorm:"type:varchar(512)" json:"website_url,omitempty"`
	CoverImage   string     `gorm:"type:varchar(512)" json:"cover_image,omitempty"`
	DatePosted   time.Time  `gorm:"not null" json:"date_posted"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
