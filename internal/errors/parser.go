package errors

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a persistence failure translated for API clients.
// Fields is keyed by json field path and is nil when the failure cannot be
// pinned to a single field.
type ErrorInfo struct {
	Code    string
	Message string
	Fields  map[string]string
}

var (
	// sqlite: "UNIQUE constraint failed: users.phone"
	sqliteColumnPattern = regexp.MustCompile(`constraint failed: \w+\.(\w+)`)
	// postgres: `duplicate key value violates unique constraint "idx_users_phone"`
	// table names are plural, so the column follows the first "s_"
	postgresIndexPattern = regexp.MustCompile(`constraint "(?:idx|uni)_\w*?s_(\w+)"`)
	// postgres: `null value in column "city" of relation ...`
	postgresColumnPattern = regexp.MustCompile(`column "(\w+)"`)
)

// ParsePersistenceError classifies an error returned by gorm for an entity of
// the given kind. Driver messages are matched for both postgres and sqlite.
func ParsePersistenceError(err error, kind string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "internal server error"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: fmt.Sprintf("%s not found", kind),
		}
	}

	errStr := err.Error()
	errLower := strings.ToLower(errStr)

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(errLower, "duplicate key"),
		strings.Contains(errLower, "unique constraint"):
		return parseDuplicateKeyError(errStr, kind)

	case errors.Is(err, gorm.ErrForeignKeyViolated),
		strings.Contains(errLower, "foreign key constraint"):
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: fmt.Sprintf("%s references or is referenced by other records", kind),
		}

	case strings.Contains(errLower, "not null constraint"),
		strings.Contains(errLower, "violates not-null constraint"):
		return parseNotNullError(errStr, kind)

	case strings.Contains(errLower, "check constraint"):
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: fmt.Sprintf("%s has a value out of the allowed range", kind),
		}
	}

	return ErrorInfo{
		Code:    InternalDatabaseError,
		Message: fmt.Sprintf("failed to persist %s", kind),
	}
}

func parseDuplicateKeyError(errStr, kind string) ErrorInfo {
	info := ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: fmt.Sprintf("%s already exists", kind),
	}

	column := sqliteColumn(errStr)
	if column == "" {
		if m := postgresIndexPattern.FindStringSubmatch(errStr); m != nil {
			column = m[1]
		}
	}
	if column == "" || column == "id" {
		return info
	}

	info.Fields = map[string]string{
		FieldPath(column): fmt.Sprintf("%s with this %s already exists", kind, strings.ReplaceAll(column, "_", " ")),
	}
	return info
}

func parseNotNullError(errStr, kind string) ErrorInfo {
	info := ErrorInfo{
		Code:    ValidationRequired,
		Message: fmt.Sprintf("%s is missing a required value", kind),
	}

	column := sqliteColumn(errStr)
	if column == "" {
		if m := postgresColumnPattern.FindStringSubmatch(errStr); m != nil {
			column = m[1]
		}
	}
	if column != "" {
		info.Fields = map[string]string{FieldPath(column): "must not be null"}
	}
	return info
}

func sqliteColumn(errStr string) string {
	if m := sqliteColumnPattern.FindStringSubmatch(errStr); m != nil {
		return m[1]
	}
	return ""
}

// FieldPath maps a column name to the json path of the field it stores.
// Embedded address columns become "address.<field>".
func FieldPath(column string) string {
	if rest, ok := strings.CutPrefix(column, "address_"); ok {
		return "address." + rest
	}
	return column
}
