package txpool

import "errors"

var (
	ErrAlreadyKnown        = errors.New("already known")
	ErrInvalidSender       = errors.New("invalid sender")
	ErrNonceTooLow         = errors.New("nonce too low")
	ErrUnderpriced         = errors.New("transaction underpriced")
	ErrReplaceUnderpriced  = errors.New("replacement transaction underpriced")
	ErrInsufficientFunds   = errors.New("insufficient funds for gas * price + value")
	ErrFeeBelowBase        = errors.New("max fee per gas less than block base fee")
	ErrTipAboveFeeCap      = errors.New("max priority fee per gas higher than max fee per gas")
	ErrPoolFull            = errors.New("txpool is full")
	ErrGasLimit            = errors.New("exceeds block gas limit")
	ErrNegativeValue       = errors.New("negative value")
	ErrOversizedData       = errors.New("oversized data")
	ErrBlobTxMissingSidecar = errors.New("blob transaction missing sidecar")
)
