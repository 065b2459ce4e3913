package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/ikkim/shop-backend/internal/errors"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrRevocationDisabled = errors.New("token revocation is not configured")
)

// NotFoundError is returned when no entity of Kind has the requested id
type NotFoundError struct {
	Kind string
	ID   uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Kind, e.ID)
}

// failure is shared by the create/update/delete error types.
// Fields maps json field paths to client-facing messages. Message and Code
// describe the failure to clients when no single field is to blame; Err is
// the underlying cause and only reaches logs.
type failure struct {
	Kind    string
	Fields  map[string]string
	Code    string
	Message string
	Err     error
}

func (f *failure) describe(action string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "failed to %s %s", action, f.Kind)
	if len(f.Fields) > 0 {
		keys := make([]string, 0, len(f.Fields))
		for k := range f.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			sep := ", "
			if i == 0 {
				sep = ": "
			}
			fmt.Fprintf(&b, "%s%s %s", sep, k, f.Fields[k])
		}
	} else if f.Err != nil {
		fmt.Fprintf(&b, ": %v", f.Err)
	} else if f.Message != "" {
		fmt.Fprintf(&b, ": %s", f.Message)
	}
	return b.String()
}

// FieldErrors returns the per-field client messages, nil when the failure
// concerns the entity as a whole
func (f *failure) FieldErrors() map[string]string { return f.Fields }

// ClientMessage is safe to send to API clients. It never contains driver
// text.
func (f *failure) ClientMessage() string { return f.Message }

// ClientCode is the error code classified from the cause, empty for
// validation failures.
func (f *failure) ClientCode() string { return f.Code }

type NotCreatedError struct{ failure }

func (e *NotCreatedError) Error() string { return e.describe("create") }
func (e *NotCreatedError) Unwrap() error { return e.Err }

type NotUpdatedError struct{ failure }

func (e *NotUpdatedError) Error() string { return e.describe("update") }
func (e *NotUpdatedError) Unwrap() error { return e.Err }

type NotDeletedError struct{ failure }

func (e *NotDeletedError) Error() string { return e.describe("delete") }
func (e *NotDeletedError) Unwrap() error { return e.Err }

func fieldFailure(kind string, fields map[string]string) failure {
	return failure{Kind: kind, Fields: fields, Message: fmt.Sprintf("invalid %s", kind)}
}

func persistenceFailure(kind string, err error) failure {
	info := apperrors.ParsePersistenceError(err, kind)
	return failure{Kind: kind, Fields: info.Fields, Code: info.Code, Message: info.Message, Err: err}
}

func newNotCreated(kind string, fields map[string]string) error {
	return &NotCreatedError{fieldFailure(kind, fields)}
}

func newNotUpdated(kind string, fields map[string]string) error {
	return &NotUpdatedError{fieldFailure(kind, fields)}
}

// wrapCreateError translates a persistence error raised by Insert
func wrapCreateError(kind string, err error) error {
	return &NotCreatedError{persistenceFailure(kind, err)}
}

// wrapUpdateError translates a persistence error raised by Update. A row that
// disappeared in the meantime is reported as not found.
func wrapUpdateError(kind string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Kind: kind, ID: id}
	}
	return &NotUpdatedError{persistenceFailure(kind, err)}
}

func wrapDeleteError(kind string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Kind: kind, ID: id}
	}
	return &NotDeletedError{persistenceFailure(kind, err)}
}
