// Package apierror provides the JSON envelope and error taxonomy for the API.
// All errors returned to clients go through this package so that internal
// details (driver errors, SQL, stack traces) never leak into a response.
package apierror

import (
	"errors"
	"net/http"
)

// Kind sentinels. Wrap them (directly or through *Error) so callers can
// classify with errors.Is.
var (
	ErrValidacao     = errors.New("validation error")
	ErrNaoEncontrado = errors.New("not found")
	ErrConflito      = errors.New("conflict")
	ErrPersistencia  = errors.New("persistence error")
)

// Error carries a kind plus a message that is safe to show to clients.
type Error struct {
	Kind    error
	Message string
	Fields  map[string]string
	// Cause is logged, never rendered.
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Is lets errors.Is(err, ErrValidacao) match an *Error of that kind.
func (e *Error) Is(target error) bool { return e.Kind == target }

func (e *Error) Unwrap() error { return e.Cause }

func Validacao(msg string) *Error { return &Error{Kind: ErrValidacao, Message: msg} }

// ValidacaoCampos is a validation error that also names the offending fields.
func ValidacaoCampos(msg string, fields map[string]string) *Error {
	return &Error{Kind: ErrValidacao, Message: msg, Fields: fields}
}

func NaoEncontrado(msg string) *Error { return &Error{Kind: ErrNaoEncontrado, Message: msg} }

func Conflito(msg string, cause error) *Error {
	return &Error{Kind: ErrConflito, Message: msg, Cause: cause}
}

func Persistencia(msg string, cause error) *Error {
	return &Error{Kind: ErrPersistencia, Message: msg, Cause: cause}
}

// Status maps an error to its HTTP status code. Unclassified errors are 500.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidacao):
		return http.StatusBadRequest
	case errors.Is(err, ErrNaoEncontrado):
		return http.StatusNotFound
	case errors.Is(err, ErrConflito):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Envelope is the body of every JSON response, successful or not.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func OK(data any) Envelope { return Envelope{Success: true, Data: data} }

func OKMsg(msg string, data any) Envelope { return Envelope{Success: true, Message: msg, Data: data} }

// New builds a failure envelope with a plain message.
func New(msg string) Envelope { return Envelope{Success: false, Message: msg} }

// From builds the failure envelope for err. Messages of *Error values are
// client-safe; anything else is replaced with a generic message.
func From(err error) Envelope {
	var e *Error
	if errors.As(err, &e) {
		return Envelope{Success: false, Message: e.Message, Fields: e.Fields}
	}
	return New(MsgErroInterno)
}

const MsgErroInterno = "Erro interno do servidor."
