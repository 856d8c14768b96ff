package session

import "errors"

var (
	ErrNotFound          = errors.New("session not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrReviewNotFound    = errors.New("no review for session")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotActive         = errors.New("session is not active")
)
