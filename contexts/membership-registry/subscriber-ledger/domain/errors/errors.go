package errors

import "errors"

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrInsufficientPayment = errors.New("payment is below the minimum subscription fee")
	ErrAlreadySubscribed   = errors.New("account is already subscribed")
	ErrNotRemovable        = errors.New("subscriber is absent, inactive, or not yet expired")
	ErrUnauthorized        = errors.New("caller is not the operator")
)
