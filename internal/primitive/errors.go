package primitive

import "errors"

type ErrorCode string

const ErrorCodeNotFound ErrorCode = "NOT_FOUND"

// StoreError is a typed error returned by Store operations so handlers can
// map it to an HTTP status and code.
type StoreError struct {
	Code ErrorCode
	Msg  string
}

func (e *StoreError) Error() string {
	return e.Msg
}

func NewNotFoundError(msg string) error {
	return &StoreError{Code: ErrorCodeNotFound, Msg: msg}
}

func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var se *StoreError
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == ErrorCodeNotFound
}
