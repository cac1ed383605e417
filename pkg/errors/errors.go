// Package errors provides the typed errors of a reconciliation run.
// Fatal conditions (missing inputs, malformed sitemaps, bad configuration)
// are distinguished from recoverable ones (malformed content files) so
// callers can decide with errors.Is / errors.As instead of string matching.
package errors

import (
	"errors"
	"fmt"
)

// New is an alias for the standard library errors.New.
var New = errors.New

// Is, As and Unwrap re-export the standard helpers so callers need a single import.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// Sentinel errors.
var (
	// ErrMissingInput indicates a required input artifact does not exist.
	ErrMissingInput = errors.New("missing input")

	// ErrMalformedContent indicates a content file whose metadata block cannot be parsed.
	ErrMalformedContent = errors.New("malformed content file")

	// ErrMalformedSitemap indicates a sitemap file that is not well-formed XML.
	ErrMalformedSitemap = errors.New("malformed sitemap")

	// ErrInvalidConfig indicates a registry or settings file with unusable content.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MissingInputError names an input artifact that reconciliation cannot proceed without.
type MissingInputError struct {
	Artifact string
	Path     string
	Hint     string
}

// Error implements the error interface
func (e *MissingInputError) Error() string {
	msg := fmt.Sprintf("%s not found at %s", e.Artifact, e.Path)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

// Is implements errors.Is support
func (e *MissingInputError) Is(target error) bool {
	return target == ErrMissingInput
}

// NewMissingInputError creates a new MissingInputError
func NewMissingInputError(artifact, path, hint string) *MissingInputError {
	return &MissingInputError{Artifact: artifact, Path: path, Hint: hint}
}

// MalformedContentError reports a content file whose metadata block failed to parse.
type MalformedContentError struct {
	Path   string
	Format string
	Err    error
}

// Error implements the error interface
func (e *MalformedContentError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("malformed %s metadata in %s: %v", e.Format, e.Path, e.Err)
	}
	return fmt.Sprintf("malformed metadata in %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *MalformedContentError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *MalformedContentError) Is(target error) bool {
	return target == ErrMalformedContent
}

// MalformedSitemapError reports a sitemap file that is not well-formed XML.
type MalformedSitemapError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *MalformedSitemapError) Error() string {
	return fmt.Sprintf("sitemap %s is not well-formed XML: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *MalformedSitemapError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *MalformedSitemapError) Is(target error) bool {
	return target == ErrMalformedSitemap
}

// NewMalformedSitemapError creates a new MalformedSitemapError
func NewMalformedSitemapError(path string, err error) *MalformedSitemapError {
	return &MalformedSitemapError{Path: path, Err: err}
}

// ConfigError represents a registry or settings file that could not be used.
type ConfigError struct {
	Component string
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Component != "" {
		msg += " in " + e.Component
	}
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	msg += ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, path, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Path: path, Message: message, Err: err}
}

// IOError represents a failed filesystem operation.
type IOError struct {
	Operation string
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// IsMissingInput checks if an error is a missing input error
func IsMissingInput(err error) bool {
	return errors.Is(err, ErrMissingInput)
}

// IsMalformedSitemap checks if an error is a malformed sitemap error
func IsMalformedSitemap(err error) bool {
	return errors.Is(err, ErrMalformedSitemap)
}

// IsMalformedContent checks if an error is a malformed content error
func IsMalformedContent(err error) bool {
	return errors.Is(err, ErrMalformedContent)
}
