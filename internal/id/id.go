package id

import "github.com/google/uuid"

// GenerateAttemptID returns a full UUID for test attempts, which are exposed
// to clients and must not be guessable by enumeration.
func GenerateAttemptID() string {
	return uuid.NewString()
}
