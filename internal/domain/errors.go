package domain

import "errors"

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrActivityFull     = errors.New("activity is full")
	ErrAlreadySignedUp  = errors.New("student already signed up for the activity")
	ErrNotSignedUp      = errors.New("student not signed up for the activity")
	ErrEmailRequired    = errors.New("email is required")
)
