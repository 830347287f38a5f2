package config

import "errors"

var (
	// ErrNoBaseURL is returned when no API base URL was configured
	ErrNoBaseURL = errors.New("no base URL configured")
	// ErrNoStartResource is returned when no start resource was given
	ErrNoStartResource = errors.New("no start resource configured")
)
