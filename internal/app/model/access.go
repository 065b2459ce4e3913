package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// Access is the authorization level of a registered user
type Access string

const (
	AccessUser          Access = "USER"
	AccessManager       Access = "MANAGER"
	AccessAdministrator Access = "ADMINISTRATOR"
)

var ErrUnknownAccess = errors.New("unknown access level")

var accessCodes = map[Access]string{
	AccessUser:          "U",
	AccessManager:       "M",
	AccessAdministrator: "A",
}

// Code returns the single-character persisted form
func (a Access) Code() (string, error) {
	code, ok := accessCodes[a]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAccess, string(a))
	}
	return code, nil
}

// AccessFromCode decodes a persisted access code
func AccessFromCode(code string) (Access, error) {
	for access, c := range accessCodes {
		if c == code {
			return access, nil
		}
	}
	return "", fmt.Errorf("%w: code %q", ErrUnknownAccess, code)
}

// ParseAccess validates an access name such as "MANAGER"
func ParseAccess(name string) (Access, error) {
	a := Access(name)
	if _, ok := accessCodes[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAccess, name)
	}
	return a, nil
}

func (a Access) Value() (driver.Value, error) {
	return a.Code()
}

func (a *Access) Scan(src interface{}) error {
	code, err := scanCode(src)
	if err != nil {
		return err
	}
	decoded, err := AccessFromCode(code)
	if err != nil {
		return err
	}
	*a = decoded
	return nil
}

func scanCode(src interface{}) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("cannot scan %T into a code", src)
	}
}
