package domain

import "github.com/google/uuid"

// NewID returns a fresh listing identifier.
func NewID() string {
	return uuid.NewString()
}
