package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Kind string

// ErrDuplicate marks a store write rejected by a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate key")

const (
	KindValidation          Kind = "VALIDATION_FAILURE"
	KindNotFound            Kind = "NOT_FOUND"
	KindUnsupportedFileType Kind = "UNSUPPORTED_FILE_TYPE"
	KindFileTooLarge        Kind = "FILE_TOO_LARGE"
	KindStoreWrite          Kind = "STORE_WRITE_FAILURE"
	KindBlobWrite           Kind = "BLOB_WRITE_FAILURE"
	KindBlobDelete          Kind = "BLOB_DELETE_FAILURE"
	KindUnauthorized        Kind = "UNAUTHORIZED"
	KindForbidden           Kind = "FORBIDDEN"
	KindInternal            Kind = "INTERNAL"
)

// Error is the application error carried from services to handlers.
type Error struct {
	Kind    Kind              `json:"code"`
	Message string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, apperrors.New(KindNotFound, "")) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}
	return false
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func ValidationFields(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Fields: fields}
}

func NotFound(entity string) *Error {
	return New(KindNotFound, entity+" not found")
}

func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

func Internal(err error) *Error {
	return Wrap(KindInternal, "Server error", err)
}

// KindOf returns the kind of the first *Error in the chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindUnsupportedFileType:
		return fiber.StatusUnsupportedMediaType
	case KindFileTooLarge:
		return fiber.StatusRequestEntityTooLarge
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// Respond writes err as the JSON error envelope used by every handler.
func Respond(c *fiber.Ctx, err error) error {
	var e *Error
	if !errors.As(err, &e) {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		e = Internal(err)
	}

	body := fiber.Map{
		"error": e.Message,
		"code":  e.Kind,
	}
	if len(e.Fields) > 0 {
		body["fields"] = e.Fields
	}
	status := HTTPStatus(e.Kind)
	if e.Kind == KindStoreWrite && errors.Is(e.Err, ErrDuplicate) {
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(body)
}
