package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/eduaid/scholarship-app/models"
)

// SavedSetService tracks per-user bookmarked scholarships. The whole set
// lives in one row per user, so a toggle is a read-modify-write of that row.
type SavedSetService struct {
	db *gorm.DB
}

func NewSavedSetService(db *gorm.DB) *SavedSetService {
	return &SavedSetService{db: db}
}

// Toggle flips scholarshipID in the user's saved set and returns the new
// membership state.
func (s *SavedSetService) Toggle(userID, scholarshipID uint) (bool, error) {
	var saved bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var set models.SavedSet
		err := tx.Where("user_id = ?", userID).First(&set).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			set = models.SavedSet{UserID: userID, ScholarshipIDs: models.IDList{}}
		} else if err != nil {
			return err
		}

		if set.ScholarshipIDs.Contains(scholarshipID) {
			next := make(models.IDList, 0, len(set.ScholarshipIDs)-1)
			for _, id := range set.ScholarshipIDs {
				if id != scholarshipID {
					next = append(next, id)
				}
			}
			set.ScholarshipIDs = next
			saved = false
		} else {
			set.ScholarshipIDs = append(set.ScholarshipIDs, scholarshipID)
			saved = true
		}

		return tx.Save(&set).Error
	})
	return saved, err
}

// IsSaved is pure set containment.
func (s *SavedSetService) IsSaved(userID, scholarshipID uint) (bool, error) {
	ids, err := s.List(userID)
	if err != nil {
		return false, err
	}
	return ids.Contains(scholarshipID), nil
}

// List returns the user's saved scholarship ids; a user with no row has an
// empty set.
func (s *SavedSetService) List(userID uint) (models.IDList, error) {
	var set models.SavedSet
	err := s.db.Where("user_id = ?", userID).First(&set).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.IDList{}, nil
	}
	if err != nil {
		return nil, err
	}
	if set.ScholarshipIDs == nil {
		return models.IDList{}, nil
	}
	return set.ScholarshipIDs, nil
}
