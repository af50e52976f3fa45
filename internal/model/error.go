// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidInviteCode = errors.New("invalid invite code")
	ErrInvalidInviteeID  = errors.New("invalid invitee ID")
	ErrMissingCode       = errors.New("missing code parameter")
	ErrDeadlinePassed    = errors.New("RSVP deadline has passed")
	ErrConfiguration     = errors.New("server configuration error")
)

// ConfigurationError reports settings the server cannot run without.
// It is never caused by the client.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing configuration: %s", strings.Join(e.Missing, ", "))
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// FieldError describes a single rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a client error. Reason is one of the sentinel errors
// above, Fields is only set when the request shape itself was rejected.
type ValidationError struct {
	Reason error
	Fields []FieldError
}

func NewValidationError(reason error, fields ...FieldError) *ValidationError {
	return &ValidationError{Reason: reason, Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Reason.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", e.Reason, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// GatewayError wraps any failure talking to the row store.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
