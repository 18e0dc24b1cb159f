package errors

import (
	"fmt"
)

// UnknownErrorMessage is recorded when a load fails without any message text.
const UnknownErrorMessage = "Unknown error"

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *AtlasError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *AtlasError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// LoadFailed creates the single failure kind recorded by the dataset store.
// The message is the cause's text, or UnknownErrorMessage when there is none.
func LoadFailed(cause error) *AtlasError {
	msg := ""
	if cause != nil {
		if atlasErr, ok := cause.(*AtlasError); ok {
			msg = atlasErr.Message
		} else {
			msg = cause.Error()
		}
	}
	if msg == "" {
		msg = UnknownErrorMessage
	}
	return Wrap(cause, ErrCodeLoadFailed, msg)
}

// FetchFailed creates an error for a failed request to a country source
func FetchFailed(source string, err error) *AtlasError {
	return Wrap(err, ErrCodeFetchFailed, fmt.Sprintf("failed to fetch countries from %s: %v", source, err)).
		WithDetail("source", source)
}

// SourceUnavailable creates an error for a source answering with a non-success status
func SourceUnavailable(source string, status int) *AtlasError {
	return New(ErrCodeSourceUnavailable,
		fmt.Sprintf("country source %s answered with status %d", source, status)).
		WithDetail("source", source).
		WithDetail("status", status)
}

// InvalidRegion creates an error for a region outside the known catalogue
func InvalidRegion(region string) *AtlasError {
	return New(ErrCodeInvalidInput, fmt.Sprintf("unknown region '%s'", region)).
		WithDetail("region", region)
}
