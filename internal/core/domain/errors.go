package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidCategoryPath = errors.New("invalid category path")
	ErrInvalidLocationPath = errors.New("invalid location path")
	ErrValidationFailed    = errors.New("validation failed")
	ErrSelectionSuperseded = errors.New("selection superseded by a newer one")
)

// ValidationError несет сообщения по ключам полей формы.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return ErrValidationFailed.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
