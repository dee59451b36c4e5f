package types

import "errors"

// Codec/validation error taxonomy (spec.md §7).
var (
	ErrInvalidRLP          = errors.New("invalid RLP encoding")
	ErrWrongTxType         = errors.New("leading type byte does not match requested transaction type")
	ErrLeadingZero         = errors.New("RLP field has a leading zero byte")
	ErrLengthMismatch      = errors.New("field has the wrong byte length")
	ErrInvalidChainId      = errors.New("invalid chain id for signer")
	ErrYParityInvalid      = errors.New("y parity must be 0 or 1")
	ErrHighS               = errors.New("signature s value above secp256k1 half order")
	ErrGasOverflow         = errors.New("gas limit * price overflows 256 bits")
	ErrMaxFeeLessThanTip   = errors.New("max fee per gas less than max priority fee per gas")
	ErrBlobCountOutOfRange = errors.New("blob transaction hash count out of range")
	ErrVersionedHashMismatch = errors.New("blob versioned hash does not match computed value")
	ErrKZGProofInvalid     = errors.New("KZG proof verification failed")
	ErrTxTypeNotActivated  = errors.New("transaction type not activated on this chain")
	ErrInvalidSig          = errors.New("invalid transaction v, r, s values")
	ErrTxTypeNotSupported  = errors.New("transaction type not supported")
	ErrNoSigner            = errors.New("missing signing method")
)
