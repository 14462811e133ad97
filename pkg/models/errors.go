package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an analysis failed
type ErrorKind string

const (
	ErrorNotFound        ErrorKind = "not_found"
	ErrorMetadataFailure ErrorKind = "metadata_failure"
)

// AnalysisError is returned instead of an InspectionResult
type AnalysisError struct {
	Path    string
	Kind    ErrorKind
	Message string
	Err     error
}

// NewNotFoundError reports a path that does not exist
func NewNotFoundError(path string) *AnalysisError {
	return &AnalysisError{
		Path:    path,
		Kind:    ErrorNotFound,
		Message: fmt.Sprintf("File not found: %s", path),
	}
}

// NewMetadataError reports a failed metadata read
func NewMetadataError(path string, err error) *AnalysisError {
	return &AnalysisError{
		Path:    path,
		Kind:    ErrorMetadataFailure,
		Message: fmt.Sprintf("Error analyzing file: %v", err),
		Err:     err,
	}
}

func (e *AnalysisError) Error() string {
	return e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is an AnalysisError of kind not_found
func IsNotFound(err error) bool {
	var ae *AnalysisError
	return errors.As(err, &ae) && ae.Kind == ErrorNotFound
}
