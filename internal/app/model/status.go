package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// Status is the lifecycle state of an order
type Status string

const (
	StatusPosted    Status = "POSTED"
	StatusAccepted  Status = "ACCEPTED"
	StatusShipping  Status = "SHIPPING"
	StatusDelivered Status = "DELIVERED"
	StatusCompleted Status = "COMPLETED"
	StatusAbolished Status = "ABOLISHED"
)

var ErrUnknownStatus = errors.New("unknown order status")

var statusCodes = map[Status]string{
	StatusPosted:    "P",
	StatusAccepted:  "A",
	StatusShipping:  "S",
	StatusDelivered: "D",
	StatusCompleted: "C",
	StatusAbolished: "X",
}

// forward lifecycle; ABOLISHED is handled separately
var statusNext = map[Status]Status{
	StatusPosted:    StatusAccepted,
	StatusAccepted:  StatusShipping,
	StatusShipping:  StatusDelivered,
	StatusDelivered: StatusCompleted,
}

// Statuses lists every status in lifecycle order
func Statuses() []Status {
	return []Status{StatusPosted, StatusAccepted, StatusShipping, StatusDelivered, StatusCompleted, StatusAbolished}
}

func (s Status) Code() (string, error) {
	code, ok := statusCodes[s]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, string(s))
	}
	return code, nil
}

// StatusFromCode decodes a persisted status code. Unknown codes are an error.
func StatusFromCode(code string) (Status, error) {
	for status, c := range statusCodes {
		if c == code {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: code %q", ErrUnknownStatus, code)
}

// ParseStatus validates a status name such as "SHIPPING"
func ParseStatus(name string) (Status, error) {
	s := Status(name)
	if _, ok := statusCodes[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, name)
	}
	return s, nil
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusAbolished
}

// CanTransitionTo reports whether an order may move from s to next.
// Keeping the current status is always allowed.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	if s.IsTerminal() {
		return false
	}
	if next == StatusAbolished {
		return true
	}
	return statusNext[s] == next
}

func (s Status) Value() (driver.Value, error) {
	return s.Code()
}

func (s *Status) Scan(src interface{}) error {
	code, err := scanCode(src)
	if err != nil {
		return err
	}
	decoded, err := StatusFromCode(code)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}
