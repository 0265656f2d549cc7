// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verses

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned, wrapped in a *NotFoundError, when a book is
// unknown or a chapter has no verse records.
var ErrNotFound = errors.New("not found")

// NotFoundError names the missing resource.
type NotFoundError struct {
	Resource string // "book" or "chapter"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func bookNotFound(book string) error {
	return &NotFoundError{Resource: "book", ID: fmt.Sprintf("%q", book)}
}

// ChapterNotFound reports a chapter with no verse records.
func ChapterNotFound(book string, chapter int) error {
	return &NotFoundError{Resource: "chapter", ID: fmt.Sprintf("%s %d", book, chapter)}
}
