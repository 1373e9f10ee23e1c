package files

import "errors"

var (
	ErrValidation  = errors.New("validation failed")
	ErrPersistence = errors.New("persistence failed")
	ErrNotFound    = errors.New("not found")
	ErrInvalidID   = errors.New("invalid file id")
	ErrRetrieval   = errors.New("retrieval failed")
	ErrDuplicateID = errors.New("duplicate file id")
)

// ValidationError carries a message that is safe to show to the uploader.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func validationError(msg string) error {
	return &ValidationError{Message: msg}
}
