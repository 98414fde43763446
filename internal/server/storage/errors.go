package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTokenNotFound indicates that refresh token was not found
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrCodeNotFound indicates that no active login code exists for the email
	ErrCodeNotFound = errors.New("login code not found")

	// ErrFamilyNotFound indicates that family was not found
	ErrFamilyNotFound = errors.New("family not found")

	// ErrMemberNotFound indicates that family member record was not found
	ErrMemberNotFound = errors.New("member not found")

	// ErrInviteNotFound indicates that no pending invite exists for the email
	ErrInviteNotFound = errors.New("invite not found")

	// ErrDocNotFound indicates that document was not found or is deleted
	ErrDocNotFound = errors.New("document not found")
)
