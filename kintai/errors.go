package kintai

import "errors"

var (
	// ErrInvalidTransition is returned when an operation is attempted
	// from a state that does not allow it. The record is left unchanged.
	ErrInvalidTransition = errors.New("invalid attendance transition")

	// ErrBreakExhausted is returned when a break is started with no
	// allowance left.
	ErrBreakExhausted = errors.New("break allowance exhausted")
)
