package websocket

import "errors"

var (
	ErrClientQueueFull = errors.New("client message queue is full")
	ErrMalformedEvent  = errors.New("malformed event payload")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotInRoom       = errors.New("user not in room")
)
