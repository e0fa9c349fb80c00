// Package errs defines the error taxonomy shared by the pipeline, its agents and tools.
//
// Only ToolInputError is recoverable: it is handed back to the invoking agent as
// a failed tool call. Every other kind aborts the whole pipeline run.
package errs

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a missing or invalid setting. It is always raised
// before any network call is made.
type ConfigurationError struct {
	// Field is the offending setting, e.g. "llm.api_key"
	Field string
	// Reason is a human readable explanation
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Config returns a new ConfigurationError
func Config(field, reason string) error {
	return &ConfigurationError{Field: field, Reason: reason}
}

// ToolInputError reports input a tool refused to process.
type ToolInputError struct {
	Tool  string
	Input string
	Err   error
}

func (e *ToolInputError) Error() string {
	return fmt.Sprintf("tool %s rejected input %q: %v", e.Tool, e.Input, e.Err)
}

func (e *ToolInputError) Unwrap() error {
	return e.Err
}

// ToolInput returns a new ToolInputError
func ToolInput(tool, input string, err error) error {
	return &ToolInputError{Tool: tool, Input: input, Err: err}
}

// ResourceNotFoundError reports a required local resource that does not exist.
// Remediation tells the operator how to create it.
type ResourceNotFoundError struct {
	Resource    string
	Path        string
	Remediation string
}

func (e *ResourceNotFoundError) Error() string {
	msg := fmt.Sprintf("%s not found at %s", e.Resource, e.Path)
	if e.Remediation != "" {
		msg += ". " + e.Remediation
	}
	return msg
}

// NotFound returns a new ResourceNotFoundError
func NotFound(resource, path, remediation string) error {
	return &ResourceNotFoundError{Resource: resource, Path: path, Remediation: remediation}
}

// UpstreamServiceError wraps a failure of a remote dependency (LLM, search, embeddings).
type UpstreamServiceError struct {
	Service string
	Err     error
}

func (e *UpstreamServiceError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
}

func (e *UpstreamServiceError) Unwrap() error {
	return e.Err
}

// Upstream wraps err as an UpstreamServiceError. A nil err returns nil and an
// error that already is an UpstreamServiceError is returned unchanged.
func Upstream(service string, err error) error {
	if err == nil {
		return nil
	}
	var target *UpstreamServiceError
	if errors.As(err, &target) {
		return err
	}
	return &UpstreamServiceError{Service: service, Err: err}
}

// UnsupportedOperationError reports a call mode a component does not implement.
type UnsupportedOperationError struct {
	Operation string
	Target    string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s does not support %s", e.Target, e.Operation)
}

// Unsupported returns a new UnsupportedOperationError
func Unsupported(target, operation string) error {
	return &UnsupportedOperationError{Target: target, Operation: operation}
}

// IsToolInput reports whether err is recoverable at tool-call granularity.
func IsToolInput(err error) bool {
	var target *ToolInputError
	return errors.As(err, &target)
}
