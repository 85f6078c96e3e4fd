package apperrors

import (
	"errors"
	"fmt"
)

// Application-specific errors
var (
	// ErrContentUnavailable means every aggregation tier came back empty.
	ErrContentUnavailable = errors.New("content unavailable")
	// ErrWeatherUnavailable means the weather provider returned no usable data.
	ErrWeatherUnavailable = errors.New("weather unavailable")
	ErrUnknownLocality    = errors.New("unknown locality")
	// ErrTimezoneNotAllowed rejects timezones outside the enumerated list,
	// so bad identifiers never reach the subscription store.
	ErrTimezoneNotAllowed = errors.New("timezone not in allowed list")
	ErrInvalidInput       = errors.New("invalid input")
)

// StoreError wraps a subscription store failure with the failed operation
type StoreError struct {
	Op  string
	Err error
}

func (e StoreError) Error() string {
	return fmt.Sprintf("subscription store %s: %v", e.Op, e.Err)
}

func (e StoreError) Unwrap() error {
	return e.Err
}
