package models

import "time"

// Session is the in-memory authenticated session held for the lifetime of
// the running instance. It is mirrored to durable local storage as a
// StoredSession so it can be restored on restart.
//
// A session is valid only while its referenced user still exists and the
// current time is before ExpiresAt.
type Session struct {
	// Token is the compact signed token issued at login.
	Token string `json:"token"`

	// User is the cached account the session belongs to. Replaced via
	// the auth service after a profile edit.
	User User `json:"user"`

	// ExpiresAt is the absolute expiry time of the session.
	ExpiresAt time.Time `json:"expires_at"`
}

// StoredSession is the durable mirror of a Session persisted in the local
// settings slot. Only the user ID is stored; the full user record is
// re-fetched on restore.
type StoredSession struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
