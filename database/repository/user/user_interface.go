package userRepo

import (
	"context"
	"errors"

	"mentorhub/models"
)

// ErrNotFound indicates the referenced expert or student does not exist.
var ErrNotFound = errors.New("user record not found")

// UserRepository is the read-only directory of experts and students.
// Account management belongs to the user service; the session core only
// needs existence and identity.
type UserRepository interface {
	// GetExpertByID retrieves an expert by its unique ID.
	GetExpertByID(ctx context.Context, id string) (*models.Expert, error)
	// GetStudentByID retrieves a student by its unique ID.
	GetStudentByID(ctx context.Context, id string) (*models.Student, error)
}
