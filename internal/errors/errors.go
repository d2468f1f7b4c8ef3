// Package errors defines stable error codes for the audit tool's I/O
// boundaries. Detector and normalizer code never returns errors for
// malformed documentation; defects are represented as drift records.
// These codes cover manifest loading, caching, and example execution.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ManifestMissing indicates the export manifest file was not found
	ManifestMissing ErrorCode = "MANIFEST_MISSING"
	// ManifestInvalid indicates the manifest could not be decoded
	ManifestInvalid ErrorCode = "MANIFEST_INVALID"
	// IndexInvalid indicates a SCIP index could not be decoded
	IndexInvalid ErrorCode = "INDEX_INVALID"
	// CacheFailure indicates the report cache could not be read or written
	CacheFailure ErrorCode = "CACHE_FAILURE"
	// RunnerUnavailable indicates the example runner command is not installed
	RunnerUnavailable ErrorCode = "RUNNER_UNAVAILABLE"
	// ExportFailed indicates the report archive could not be written
	ExportFailed ErrorCode = "EXPORT_FAILED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Command     string `json:"command,omitempty"`
	Description string `json:"description,omitempty"`
}

// AuditError represents an audit failure with code, message, and suggestions
type AuditError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new AuditError
func New(code ErrorCode, message string, cause error) *AuditError {
	return &AuditError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *AuditError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AuditError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *AuditError) WithDetails(details interface{}) *AuditError {
	e.Details = details
	return e
}

// WithFix appends a suggested fix to the error
func (e *AuditError) WithFix(command, description string) *AuditError {
	e.SuggestedFixes = append(e.SuggestedFixes, FixAction{
		Command:     command,
		Description: description,
	})
	return e
}

// GetSuggestedFixes returns default fixes for well-known error codes
func GetSuggestedFixes(code ErrorCode) []FixAction {
	switch code {
	case ManifestMissing:
		return []FixAction{
			{
				Command:     "docdrift audit --manifest <path>",
				Description: "Point --manifest at the export manifest produced by your analyzer",
			},
		}
	case RunnerUnavailable:
		return []FixAction{
			{
				Command:     "node --version",
				Description: "Install Node.js or disable example execution with --run-examples=false",
			},
		}
	default:
		return nil
	}
}
