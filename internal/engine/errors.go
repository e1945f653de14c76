package engine

import "fmt"

// NotFoundError is returned when a referenced record does not exist. Shown
// to the user as-is.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
