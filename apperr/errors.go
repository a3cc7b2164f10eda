package apperr

import (
	"errors"
	"net/http"
)

var (
	NotFound            = HttpError{http.StatusNotFound, errors.New("not found")}
	BadRequest          = HttpError{http.StatusBadRequest, errors.New("bad request")}
	Conflict            = HttpError{http.StatusConflict, errors.New("conflict")}
	UnprocessableEntity = HttpError{http.StatusUnprocessableEntity, errors.New("unprocessable entity")}
	InternalServerError = HttpError{http.StatusInternalServerError, errors.New("internal server error")}
)

type HttpError struct {
	Code int
	Err  error
}

func (h HttpError) Unwrap() error {
	return h.Err
}

func (h HttpError) Error() string {
	return h.Err.Error()
}

// Is matches HttpErrors by status code so wrapped sentinels compare equal.
func (h HttpError) Is(target error) bool {
	var t HttpError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == h.Code
}

// StatusCode returns the HTTP status carried by err, or 500 when err does not
// wrap an HttpError.
func StatusCode(err error) int {
	var h HttpError
	if errors.As(err, &h) {
		return h.Code
	}
	return http.StatusInternalServerError
}
