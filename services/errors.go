package services

import (
	"errors"
	"fmt"

	"dispatch/repository"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrNotPending         = errors.New("indent is not pending at this stage")
	ErrNotCompleted       = errors.New("indent has not completed this stage")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// requireFields returns a validation error naming the first blank field.
func requireFields(fields ...[2]string) error {
	for _, f := range fields {
		if isBlank(f[1]) {
			return validationError("%s is required", f[0])
		}
	}
	return nil
}
