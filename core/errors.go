package core

import "errors"

// Transaction validation and execution sentinels (mirrors the taxonomy
// core/txpool uses at admission time; these fire inside ApplyMessage,
// once a transaction has already been selected for inclusion).
var (
	ErrGasLimitReached    = errors.New("gas limit reached")
	ErrNonceTooLow        = errors.New("nonce too low")
	ErrNonceTooHigh       = errors.New("nonce too high")
	ErrNonceMax           = errors.New("nonce has max value")
	ErrSenderNoEOA        = errors.New("sender not an eoa")
	ErrFeeCapTooLow       = errors.New("max fee per gas less than block base fee")
	ErrTipAboveFeeCap     = errors.New("max priority fee per gas higher than max fee per gas")
	ErrFeeCapVeryHigh     = errors.New("max fee per gas higher than 2^256-1")
	ErrTipVeryHigh        = errors.New("max priority fee per gas higher than 2^256-1")
	ErrInsufficientFunds  = errors.New("insufficient funds for gas * price + value")
	ErrIntrinsicGas       = errors.New("intrinsic gas too low")
	ErrBlobFeeCapTooLow   = errors.New("max fee per blob gas less than block blob gas fee")
	ErrMaxInitCodeSize    = errors.New("max initcode size exceeded")
)
