package models

import "fmt"

// ValidationError reports bad user input (file type/size, missing
// required field, price ordering). It is always caught at the
// boundary closest to the input and never crashes a workflow.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// StorageError reports an upload or delete failure in the image
// store. Upload failures abort the enclosing workflow; delete
// failures during update are reported but non-fatal.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// GenerationError reports an AI content failure (missing credential,
// malformed JSON, unreachable service). It is always recoverable:
// the workflow falls back to manual input or fixed default text.
type GenerationError struct {
	Reason string
}

func (e *GenerationError) Error() string { return e.Reason }

// RepositoryError wraps a persistence failure. Fatal to the
// enclosing workflow; never retried automatically.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s failed: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error { return e.Err }

// NotFoundError marks a miss on a product id. It is a normal empty
// result, not an exceptional condition.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ID)
}
