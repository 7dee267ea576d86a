package services

import (
	"gorm.io/gorm"

	"github.com/eduaid/scholarship-app/models"
)

// AccountReconciler cross-references applications against the live set of
// account ids to flag records whose owner deleted their account. The result
// is derived state, recomputed on demand and never persisted.
type AccountReconciler struct {
	db *gorm.DB
}

func NewAccountReconciler(db *gorm.DB) *AccountReconciler {
	return &AccountReconciler{db: db}
}

// LiveUserIDs returns the current set of valid account ids.
func (r *AccountReconciler) LiveUserIDs() (map[uint]bool, error) {
	var ids []uint
	if err := r.db.Model(&models.User{}).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// OrphanedApplications is the pure set difference: applications whose
// user id is not in the live set.
func OrphanedApplications(apps []models.Application, liveIDs map[uint]bool) []models.Application {
	var orphans []models.Application
	for _, app := range apps {
		if !liveIDs[app.UserID] {
			orphans = append(orphans, app)
		}
	}
	return orphans
}

// IsOrphaned reports whether a single application references a deleted
// account, given the live id set.
func IsOrphaned(app *models.Application, liveIDs map[uint]bool) bool {
	return !liveIDs[app.UserID]
}
