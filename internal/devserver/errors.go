package devserver

import "errors"

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidMessage = errors.New("invalid message")
	ErrBusy           = errors.New("request queue full")
)
