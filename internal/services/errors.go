package services

import "errors"

// Custom errors
var (
	// Validation
	ErrInvalidRequest   = errors.New("invalid request")
	ErrMissingRecipient = errors.New("recipient id is required")
	ErrMissingRequestID = errors.New("request id is required")
	ErrInvalidSearch    = errors.New("provide either 'email' or 'name' as search parameter")

	// Users and auth
	ErrUserNotFound      = errors.New("user not found")
	ErrUserNotRegistered = errors.New("user not registered")
	ErrWrongPassword     = errors.New("wrong password")
	ErrInvalidToken      = errors.New("invalid token")

	// Friend requests
	ErrSelfRequest       = errors.New("cannot send a friend request to yourself")
	ErrRateLimited       = errors.New("too many friend requests")
	ErrRequestNotPending = errors.New("friend request is no longer pending")
	ErrForbidden         = errors.New("not allowed to resolve this friend request")
)
