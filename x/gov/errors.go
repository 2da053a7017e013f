package gov

import "github.com/iov-one/estate/errors"

// Governance reserves 110 ~ 119.
var (
	ErrDescriptionEmpty    = errors.ErrInput.Register(110, "description empty")
	ErrDescriptionTooLong  = errors.ErrInput.Register(111, "description too long")
	ErrInsufficientBalance = errors.ErrUnauthorized.Register(112, "insufficient balance")
	ErrNoVotingPower       = errors.ErrUnauthorized.Register(113, "no voting power")
	ErrVotingNotOpen       = errors.ErrState.Register(114, "voting not open")
	ErrAlreadyVoted        = errors.ErrState.Register(115, "already voted")
	ErrAlreadyExecuted     = errors.ErrState.Register(116, "already executed")
	ErrNotPassed           = errors.ErrState.Register(117, "not passed")
)
