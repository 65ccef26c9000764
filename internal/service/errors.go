package service

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUnknownPlan    = errors.New("subscription plan not available")
	ErrInvalidInput   = errors.New("invalid registration input")
)

// ServiceError is returned by backend operations. Message is an optional
// operator-facing text supplied by the server.
type ServiceError struct {
	Op      string
	Message string
	Status  int
	Err     error
}

func (e *ServiceError) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": service error"
	}
}

func (e *ServiceError) Unwrap() error { return e.Err }

func newError(op, msg string, err error) *ServiceError {
	return &ServiceError{Op: op, Message: msg, Err: err}
}
