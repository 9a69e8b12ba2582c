package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyFavorited   = errors.New("recipe already favorited")
	ErrAIUnavailable      = errors.New("ai service unavailable")
	ErrInvalidAIResponse  = errors.New("failed to parse ai response")
	// ErrGenerationFailed is returned when no menu could be produced. Any
	// credits charged for the attempt have been refunded.
	ErrGenerationFailed = errors.New("menu generation failed")
)
