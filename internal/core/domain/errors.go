package domain

import "errors"

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenNotFound      = errors.New("caregiver token not found")
	ErrSelfCaregiver      = errors.New("cannot add yourself as a caregiver")
	ErrFormNotFound       = errors.New("form not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrInvalidAnswer      = errors.New("invalid answer")
	ErrInvalidInput       = errors.New("invalid input")
	ErrMedicationNotFound = errors.New("medication not found")
	ErrEmailInUse         = errors.New("email address in use")
	ErrTokenCollision     = errors.New("caregiver token already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStorage            = errors.New("storage failure")
)
