package handlers

import "github.com/google/uuid"

// newSessionToken mints an opaque session identifier.
func newSessionToken() string {
	return uuid.New().String()
}
