package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleFlipsMembership(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewSavedSetService(db)

	user := seedUser(t, db, "u1@example.com")
	scholarship := seedScholarship(t, db, "STEM Excellence Grant")

	saved, err := svc.Toggle(user.ID, scholarship.ID)
	assert.NoError(t, err)
	assert.True(t, saved)

	isSaved, err := svc.IsSaved(user.ID, scholarship.ID)
	assert.NoError(t, err)
	assert.True(t, isSaved)

	// Toggling twice returns the set to its original state.
	saved, err = svc.Toggle(user.ID, scholarship.ID)
	assert.NoError(t, err)
	assert.False(t, saved)

	isSaved, err = svc.IsSaved(user.ID, scholarship.ID)
	assert.NoError(t, err)
	assert.False(t, isSaved)
}

func TestToggleKeepsOtherEntries(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewSavedSetService(db)

	user := seedUser(t, db, "u1@example.com")
	s1 := seedScholarship(t, db, "STEM Excellence Grant")
	s2 := seedScholarship(t, db, "Arts Fellowship")

	svc.Toggle(user.ID, s1.ID)
	svc.Toggle(user.ID, s2.ID)
	svc.Toggle(user.ID, s1.ID)

	ids, err := svc.List(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, []uint{s2.ID}, []uint(ids))
}

func TestListEmptyForUnknownUser(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewSavedSetService(db)

	ids, err := svc.List(999)
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSavedSetsAreIndependentPerUser(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewSavedSetService(db)

	u1 := seedUser(t, db, "u1@example.com")
	u2 := seedUser(t, db, "u2@example.com")
	scholarship := seedScholarship(t, db, "STEM Excellence Grant")

	svc.Toggle(u1.ID, scholarship.ID)

	isSaved, err := svc.IsSaved(u2.ID, scholarship.ID)
	assert.NoError(t, err)
	assert.False(t, isSaved)
}
