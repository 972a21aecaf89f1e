// Package student provides lookups of student identity records.
package student

import (
	"context"
	"errors"
)

// ErrStudentNotFound is returned when no student has the requested id.
var ErrStudentNotFound = errors.New("student not found")

// Student is the identity record kept in the relational store.
type Student struct {
	ID        int64  `json:"id" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Repository abstracts the student identity store.
type Repository interface {
	// Get returns the student with id, or ErrStudentNotFound.
	Get(ctx context.Context, id int64) (*Student, error)
	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
	Close()
}
