package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// IDList is stored as a JSON array in a text column.
type IDList []uint

func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *IDList) Scan(value interface{}) error {
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
	return errors.New("unsupported type for IDList")
}

// Contains is pure set containment over the stored ids.
func (l IDList) Contains(id uint) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// SavedSet holds a user's bookmarked scholarship ids as a single row per
// user. A toggle is a read-modify-write of the whole set.
type SavedSet struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	ScholarshipIDs IDList    `gorm:"type:text" json:"scholarship_ids"`
	UpdatedAt      time.Time `json:"updated_at"`
}
