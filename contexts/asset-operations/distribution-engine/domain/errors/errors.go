package errors

import "errors"

var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrLengthMismatch    = errors.New("recipient and asset descriptor lists must be index-aligned")
	ErrUnauthorized      = errors.New("engine holds no transfer authorization on the registry")
	ErrTransferFailed    = errors.New("asset transfer did not complete")
	ErrRegistryNotFound  = errors.New("asset registry not found")
	ErrAssetNotFound     = errors.New("asset not found in registry")
	ErrNotAssetOwner     = errors.New("source account does not own the asset")
	ErrInsufficientUnits = errors.New("source account holds too few units")
)
