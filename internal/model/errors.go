package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")
	ErrUsernameTaken   = errors.New("username already exists")

	// Score errors
	ErrNoScores = errors.New("no scores recorded for account")
)
