package domain

import "errors"

var (
	// ErrSubmissionNotFound is returned when a submission id resolves to nothing.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrNotResumable is returned when resuming a submission that already reached a terminal status.
	ErrNotResumable = errors.New("submission is not resumable")
	// ErrAlreadyFinished is returned when finishing a submission a second time.
	ErrAlreadyFinished = errors.New("submission already finished")
	// ErrCatalogNotFound indicates the question catalog could not be loaded.
	ErrCatalogNotFound = errors.New("question catalog not found")
	// ErrQuestionNotFound indicates a submitted question index is invalid.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound indicates a submitted option ID is invalid.
	ErrOptionNotFound = errors.New("option not found")
	// ErrAlreadySubscribed is returned when the mailing list reports a duplicate contact.
	ErrAlreadySubscribed = errors.New("email already subscribed")
	// ErrInvalidEmail is returned for malformed email input.
	ErrInvalidEmail = errors.New("invalid email address")
)
