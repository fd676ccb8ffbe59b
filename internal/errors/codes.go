// Package errors provides structured error handling with HTTP mapping.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Session errors
	CodeSessionInvalid Code = "SESSION_INVALID"

	// Quota errors
	CodeQuotaLimitReached Code = "QUOTA_LIMIT_REACHED"

	// Item errors
	CodeItemNameTooShort    Code = "ITEM_NAME_TOO_SHORT"
	CodeItemInvalidPieces   Code = "ITEM_INVALID_PIECES"
	CodeItemInvalidDeadline Code = "ITEM_INVALID_DEADLINE"

	// Category errors
	CodeCategoryNameEmpty   Code = "CATEGORY_NAME_EMPTY"
	CodeCategoryNameTooLong Code = "CATEGORY_NAME_TOO_LONG"
	CodeCategoryExists      Code = "CATEGORY_EXISTS"
	CodeCategoryInUse       Code = "CATEGORY_IN_USE"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// Unprocessable input - field-level validation failures
	case CodeItemNameTooShort,
		CodeItemInvalidPieces,
		CodeItemInvalidDeadline,
		CodeCategoryNameEmpty,
		CodeCategoryNameTooLong:
		return http.StatusUnprocessableEntity

	// Conflict - state disallows the write
	case CodeCategoryExists,
		CodeCategoryInUse:
		return http.StatusConflict

	// Forbidden - plan limits
	case CodeQuotaLimitReached:
		return http.StatusForbidden

	case CodeSessionInvalid:
		return http.StatusUnauthorized

	case CodeNotFound:
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// Validation reports whether the code represents a field-level input error
// that should be rendered inline rather than as a page failure.
func (c Code) Validation() bool {
	switch c {
	case CodeItemNameTooShort,
		CodeItemInvalidPieces,
		CodeItemInvalidDeadline,
		CodeCategoryNameEmpty,
		CodeCategoryNameTooLong,
		CodeCategoryExists,
		CodeCategoryInUse:
		return true
	default:
		return false
	}
}
