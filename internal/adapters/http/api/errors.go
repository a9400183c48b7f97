package api

import (
	"errors"
	"net/http"

	"github.com/okian/aura/internal/adapters/repository"
	"github.com/okian/aura/internal/adapters/weathersource"
	service "github.com/okian/aura/internal/app"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrBackpressure = errors.New("backpressure")
	ErrNotFound     = errors.New("not found")
	ErrUpstream     = errors.New("upstream failure")
	ErrUnavailable  = errors.New("unavailable")
	ErrInternal     = errors.New("internal error")
)

// Error tags an error with the operation that failed and its kind.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// WrapKind tags err with op and kind.
func WrapKind(op string, kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// NewKind returns a bare error of kind for op.
func NewKind(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}

// classify maps lower-layer errors onto an API kind.
func classify(err error) error {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, service.ErrBatchTooLarge),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, repository.ErrInvalidLimit),
		errors.Is(err, weathersource.ErrInvalidQuery):
		return ErrBadRequest
	case errors.Is(err, ErrBackpressure), errors.Is(err, service.ErrBackpressure):
		return ErrBackpressure
	case errors.Is(err, ErrNotFound), errors.Is(err, weathersource.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, ErrUpstream), errors.Is(err, weathersource.ErrUpstream):
		return ErrUpstream
	case errors.Is(err, ErrUnavailable),
		errors.Is(err, service.ErrNoSource),
		errors.Is(err, service.ErrNotStarted):
		return ErrUnavailable
	default:
		return ErrInternal
	}
}

// statusFor returns the HTTP status and error code for a kind.
func statusFor(kind error) (int, string) {
	switch kind {
	case ErrBadRequest:
		return http.StatusBadRequest, "bad_request"
	case ErrBackpressure:
		return http.StatusTooManyRequests, "backpressure"
	case ErrNotFound:
		return http.StatusNotFound, "not_found"
	case ErrUpstream:
		return http.StatusBadGateway, "upstream_error"
	case ErrUnavailable:
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
