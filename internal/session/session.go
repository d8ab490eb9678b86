package session

import (
	"context"
	"net/http"
)

// Manager is an interface that abstracts the session management implementation.
// This allows for easier testing and dependency injection.
type Manager interface {
	LoadAndSave(next http.Handler) http.Handler
	Put(ctx context.Context, key string, val interface{})
	GetString(ctx context.Context, key string) string
	PopString(ctx context.Context, key string) string
	RenewToken(ctx context.Context) error
	Destroy(ctx context.Context) error
	Remove(ctx context.Context, key string)
}

// Keys used in the session store.
const (
	// UserKey holds the authenticated username; absent for anonymous sessions.
	UserKey = "authenticatedUser"
	// FlashKey holds a one-shot message surfaced on the next page render.
	FlashKey = "flash"
)
