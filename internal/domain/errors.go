package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSessionActive     = errors.New("booking session already active")
	ErrSessionNotStarted = errors.New("no active booking session")
	ErrBookingIncomplete = errors.New("booking selections incomplete")
	ErrBookingNotFound   = errors.New("booking not found")
)

var (
	ErrNoRefreshToken  = errors.New("no refresh token stored")
	ErrRequestInFlight = errors.New("auth request already in flight")
	ErrTooManyAttempts = errors.New("too many login attempts")
)

var (
	ErrUnknownStore    = errors.New("unknown store")
	ErrUnknownService  = errors.New("unknown service")
	ErrUnknownStaff    = errors.New("unknown staff member")
	ErrUnknownTimeSlot = errors.New("time slot not offered by store")
)

// AuthError is a rejection from the auth service, carrying the detail
// message from the response body (or the HTTP status text as fallback).
type AuthError struct {
	StatusCode int
	Detail     string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth service: %s (http %d)", e.Detail, e.StatusCode)
}

// IsAuthError checks if error is an auth service rejection.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// NetworkError is a transport-level failure talking to the auth service.
// Timeouts are network errors and are retryable for idempotent calls.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNetworkError checks if error is a transport failure.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// StorageError is a failure of the client-local persistence layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
