package domain

import "errors"

// LINE messaging error types

var (
	// ErrInvalidReplyRequest indicates a reply request failed validation before it was sent
	ErrInvalidReplyRequest = errors.New("invalid reply request")

	// ErrUnsupportedMessageType indicates an outgoing message type the LINE client cannot build
	ErrUnsupportedMessageType = errors.New("unsupported message type")

	// ErrNoValidMessages indicates none of the outgoing messages could be converted
	ErrNoValidMessages = errors.New("no valid messages to send")
)
