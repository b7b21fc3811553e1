package model

import "errors"

var (
	// ErrInvalidInput marks a malformed SwapRequest or PoolState. Surfaced
	// to the caller, never retried.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownToken marks a token absent from the pool's token set.
	ErrUnknownToken = errors.New("unknown token")
	// ErrSwapOutOfRange marks a trade that cannot be satisfied within the
	// pool's configured operating range. Recoverable: the caller may retry
	// with a smaller amount.
	ErrSwapOutOfRange = errors.New("swap out of range")
)
