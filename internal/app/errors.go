package app

import "errors"

var (
	ErrUnknownSession = errors.New("unknown session")
	ErrInvalidToken   = errors.New("invalid session token")
	ErrNotOwner       = errors.New("session belongs to another user")
	ErrTokenConfig    = errors.New("session token config is incomplete")
)
