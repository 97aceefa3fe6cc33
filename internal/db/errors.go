package db

import "errors"

// Domain-level database error sentinels.
var (
	ErrSubmissionNotFound    = errors.New("submission not found")
	ErrPublishedLinkNotFound = errors.New("published link not found")
	ErrUserNotFound          = errors.New("user not found")
)
