package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyPrompt is returned when a studyset is requested without a prompt.
	ErrEmptyPrompt = errors.New("studyset prompt cannot be empty")

	// ErrEmptyStudysetID is returned when a studyset has a nil ID.
	ErrEmptyStudysetID = errors.New("studyset ID cannot be empty")

	// ErrInvalidStudysetStatus is returned when a studyset status is not valid.
	ErrInvalidStudysetStatus = errors.New("invalid studyset status")

	// ErrStudysetNotPending is returned when a terminal studyset is asked to
	// transition again. A studyset is generated exactly once.
	ErrStudysetNotPending = errors.New("studyset is no longer pending")

	// ErrEmptyContent is returned when generated content has nothing to merge.
	ErrEmptyContent = errors.New("generated content cannot be empty")

	// ErrEmptyUserName is returned when a user is referenced without a name.
	ErrEmptyUserName = errors.New("user name cannot be empty")
)
