package model

type ContextKey string

const (
	// UserIDKey is the context key under which the auth middleware stores
	// the authenticated owner's UUID.
	UserIDKey ContextKey = "userID"
)
