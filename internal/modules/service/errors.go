package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is wrapped by every "entity does not exist" error the services return.
var ErrNotFound = errors.New("not found")

var (
	ErrUserNotFound          = fmt.Errorf("user %w", ErrNotFound)
	ErrProjectNotFound       = fmt.Errorf("project %w", ErrNotFound)
	ErrModuleNotFound        = fmt.Errorf("module %w", ErrNotFound)
	ErrSmartContractNotFound = fmt.Errorf("smart contract %w", ErrNotFound)
	ErrProposalNotFound      = fmt.Errorf("proposal %w", ErrNotFound)
	ErrMessageNotFound       = fmt.Errorf("message %w", ErrNotFound)
	ErrMilestoneNotFound     = fmt.Errorf("milestone %w", ErrNotFound)
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports input that can never succeed as sent.
type ValidationError struct {
	Msg    string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Msg
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return e.Msg + ": " + strings.Join(parts, "; ")
}

func invalid(msg, field, reason string) *ValidationError {
	return &ValidationError{Msg: msg, Fields: []FieldError{{Field: field, Message: reason}}}
}

// fieldErrors collects problems across several checks before failing once.
type fieldErrors []FieldError

func (f *fieldErrors) add(field, reason string) {
	*f = append(*f, FieldError{Field: field, Message: reason})
}

func (f fieldErrors) err(msg string) error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Msg: msg, Fields: f}
}

// notFoundAs replaces the store's not-found signal with the entity sentinel.
func notFoundAs(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// duplicateAs turns a uniqueness violation into a ValidationError.
func duplicateAs(err error, msg, field, reason string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return invalid(msg, field, reason)
	}
	return err
}
