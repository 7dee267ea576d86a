package services

import "errors"

var (
	ErrDuplicateApplication = errors.New("an application for this scholarship already exists")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrScholarshipNotFound  = errors.New("scholarship not found")
	ErrAccountDeleted       = errors.New("owning account no longer exists")
	ErrInvalidStatus        = errors.New("unknown application status")
	ErrInvalidTransition    = errors.New("transition not allowed from current status")
)
