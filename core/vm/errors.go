package vm

import "errors"

// Execution-time sentinels (spec.md §7 "Execution" taxonomy). These are
// ordinary Go errors, not consensus-halting failures: the EVM core catches
// them at the frame boundary and turns them into a reverted frame with
// all remaining gas consumed (except where a specific Open Question
// decision says otherwise).
var (
	ErrOutOfGas                 = errors.New("out of gas")
	ErrCodeStoreOutOfGas        = errors.New("contract creation code storage out of gas")
	ErrDepth                    = errors.New("max call depth exceeded")
	ErrInsufficientBalance      = errors.New("insufficient balance for transfer")
	ErrContractAddressCollision = errors.New("contract address collision")
	ErrExecutionReverted        = errors.New("execution reverted")
	ErrMaxInitCodeSizeExceeded  = errors.New("max initcode size exceeded")
	ErrMaxCodeSizeExceeded      = errors.New("max code size exceeded")
	ErrInvalidJump              = errors.New("invalid jump destination")
	ErrWriteProtection          = errors.New("write protection")
	ErrReturnDataOutOfBounds    = errors.New("return data out of bounds")
	ErrGasUintOverflow          = errors.New("gas uint64 overflow")
	ErrInvalidCode              = errors.New("invalid code: must not begin with 0xef")
	ErrNonceUintOverflow        = errors.New("nonce uint64 overflow")
	ErrInvalidOpCode            = errors.New("invalid opcode")
	ErrStackUnderflow           = errors.New("stack underflow")
	ErrStackOverflow            = errors.New("stack overflow")
	ErrInvalidEOFHeader         = errors.New("invalid EOF container header")
	ErrInvalidEOFMagic          = errors.New("invalid EOF magic")
	ErrUndefinedInstruction     = errors.New("undefined instruction in EOF container")
)
