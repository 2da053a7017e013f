package sigs

import "github.com/iov-one/estate/errors"

// Signature verification reserves 140 ~ 149.
var (
	// ErrInvalidSequence is returned when a signature does not carry the
	// next expected sequence of its signer, which includes replays.
	ErrInvalidSequence = errors.ErrUnauthorized.Register(140, "invalid sequence")

	// ErrInvalidSignature is returned when a signature does not match the
	// signed bytes.
	ErrInvalidSignature = errors.ErrUnauthorized.Register(141, "invalid signature")
)
