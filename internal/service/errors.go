package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials covers both unknown username and wrong
	// password. The two cases are deliberately indistinguishable to the
	// caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrThrottled is returned while the lockout window is active. The
	// password is not checked in that state.
	ErrThrottled = errors.New("too many failed attempts")

	// ErrNoSession is returned by session queries and restoration when no
	// valid session exists.
	ErrNoSession = errors.New("no active session")

	ErrTokenIsExpired = errors.New("token is expired")
)
