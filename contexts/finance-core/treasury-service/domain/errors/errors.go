package errors

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidFeeSchedule = errors.New("fee schedule must contain non-negative tiers")
	ErrNothingToWithdraw  = errors.New("treasury balance is zero")
	ErrUnauthorized       = errors.New("caller is not the operator")
)
