// Package errors is the project error type: a code that picks the HTTP status and wire kind,
// a message, an optional op label and field violations for validation failures
package errors

// Always import the project errors package as perr (platform/errors)

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an error; values are stable, add at the end
type ErrorCode uint16

const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodePanic
	ErrorCodeBadRequest
	// ErrorCodeValidation always carries details
	ErrorCodeValidation
	ErrorCodeJSON
	ErrorCodeNotFound
	ErrorCodeDB
)

// Wire kinds sent to clients
const (
	KindNotFound   = "NOT_FOUND"
	KindBadRequest = "BAD_REQUEST"
	KindValidation = "VALIDATION_ERROR"
	KindInternal   = "INTERNAL_ERROR"
)

// InternalMessage replaces the message of every 5xx error on the wire
const InternalMessage = "Internal server error"

type mapping struct {
	status int
	kind   string
}

// codes not listed here are internal errors
var codes = map[ErrorCode]mapping{
	ErrorCodeBadRequest: {http.StatusBadRequest, KindBadRequest},
	ErrorCodeJSON:       {http.StatusBadRequest, KindBadRequest},
	ErrorCodeValidation: {http.StatusUnprocessableEntity, KindValidation},
	ErrorCodeNotFound:   {http.StatusNotFound, KindNotFound},
}

func (c ErrorCode) mapping() mapping {
	if m, ok := codes[c]; ok {
		return m
	}
	return mapping{http.StatusInternalServerError, KindInternal}
}

// HTTPStatusCode is the response status for c
func HTTPStatusCode(c ErrorCode) int { return c.mapping().status }

// Kind is the wire kind for c
func (c ErrorCode) Kind() string { return c.mapping().kind }

// ErrNotFound is a generic not found error
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Violation is one failed field constraint
// Path is dotted and rooted at the request part, e.g. body.title or query.limit
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error is the structured project error
type Error struct {
	orig    error
	msg     string
	code    ErrorCode
	op      string
	details []Violation
}

// Wire is the error object of the failure envelope
type Wire struct {
	Message string      `json:"message"`
	Code    string      `json:"code"`
	Details []Violation `json:"details,omitempty"`
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.orig != nil:
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	default:
		return e.msg
	}
}

func (e *Error) Unwrap() error   { return e.orig }
func (e *Error) Code() ErrorCode { return e.code }

// Op is the operation label set with WithOp, used in logs only
func (e *Error) Op() string { return e.op }

// Details returns a copy of the violations
func (e *Error) Details() []Violation {
	if len(e.details) == 0 {
		return nil
	}
	return append([]Violation(nil), e.details...)
}

// ToWire builds the client payload; 5xx messages never leave the process
func (e *Error) ToWire() Wire {
	m := e.code.mapping()
	msg := e.msg
	if m.status >= http.StatusInternalServerError {
		msg = InternalMessage
	}
	return Wire{Code: m.kind, Message: msg, Details: e.Details()}
}

// WireFrom maps any error to a payload; foreign errors become internal errors
// nil gives the zero Wire
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: KindInternal, Message: InternalMessage}
}

// As finds the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf is err's code, ErrorCodeUnknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus is the response status for any error
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// WithOp returns a copy of err labelled with op; foreign errors pass through
func WithOp(err error, op string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	c.op = op
	return &c
}

func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap keeps orig reachable through errors.Is/As
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Invalid is a validation error with one violation per failed constraint
func Invalid(details ...Violation) error {
	return &Error{code: ErrorCodeValidation, msg: "Validation failed", details: append([]Violation(nil), details...)}
}

func NotFoundf(format string, a ...any) error   { return Newf(ErrorCodeNotFound, format, a...) }
func BadRequestf(format string, a ...any) error { return Newf(ErrorCodeBadRequest, format, a...) }
func JSONErrf(format string, a ...any) error    { return Newf(ErrorCodeJSON, format, a...) }
func PanicErrf(format string, a ...any) error   { return Newf(ErrorCodePanic, format, a...) }
