package core

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"

	"github.com/evmforge/execution-core/core/types"
	"github.com/evmforge/execution-core/core/vm"
	"github.com/evmforge/execution-core/params"
)

// ExecutionResult is everything ApplyMessage learns from running one
// message: the gas actually spent, the return data, and whether the
// message's own execution reverted (as opposed to ApplyMessage itself
// failing validation before any code ran).
type ExecutionResult struct {
	UsedGas    uint64
	Err        error
	ReturnData []byte
}

// Failed reports whether the EVM reverted or errored out while running
// the message (gas was still spent and consensus state still changed).
func (r *ExecutionResult) Failed() bool { return r.Err != nil }

// Return gives the message's return data, or nil if it reverted.
func (r *ExecutionResult) Return() []byte {
	if r.Err != nil {
		return nil
	}
	return r.ReturnData
}

// Revert gives the message's return data when the message reverted.
func (r *ExecutionResult) Revert() []byte {
	if r.Err != nil {
		return r.ReturnData
	}
	return nil
}

// StateTransition drives one message through buyGas -> execute -> refund,
// the three phases go-ethereum's own state_transition.go splits a
// transaction's effect on the world state into.
type StateTransition struct {
	gp           *GasPool
	msg          *Message
	gasRemaining uint64
	initialGas   uint64
	evm          *vm.EVM
}

// NewStateTransition builds the machinery to apply msg against evm's
// StateDB, charging gas against gp.
func NewStateTransition(evm *vm.EVM, msg *Message, gp *GasPool) *StateTransition {
	return &StateTransition{
		gp:  gp,
		evm: evm,
		msg: msg,
	}
}

// ApplyMessage runs msg to completion: it validates, buys gas, executes
// the call or creation, refunds unused gas (capped by the active
// refund-quotient EIP), and pays the block's coinbase its tip.
func ApplyMessage(evm *vm.EVM, msg *Message, gp *GasPool) (*ExecutionResult, error) {
	return NewStateTransition(evm, msg, gp).execute()
}

func (st *StateTransition) rules() params.Rules {
	return st.evm.ChainConfig().Rules()
}

// isContractCreation reports whether this message creates a contract,
// matching the tx-level IsCreate() convention of a nil To.
func (st *StateTransition) isContractCreation() bool {
	return st.msg.To == nil
}

func (st *StateTransition) execute() (*ExecutionResult, error) {
	if err := st.preCheck(); err != nil {
		return nil, err
	}
	if err := st.buyGas(); err != nil {
		return nil, err
	}

	rules := st.rules()
	sender := st.msg.From

	gas, err := types.IntrinsicGas(st.msg.Data, st.msg.AccessList, st.isContractCreation(), rules.IsHomestead, rules.IsIstanbul, rules.IsEIP3860)
	if err != nil {
		return nil, err
	}
	if st.gasRemaining < gas {
		return nil, fmt.Errorf("%w: have %d, want %d", ErrIntrinsicGas, st.gasRemaining, gas)
	}
	st.gasRemaining -= gas

	if !st.msg.SkipNonceChecks {
		st.evm.StateDB.SetNonce(sender, st.evm.StateDB.GetNonce(sender)+1)
	}

	value, overflow := uint256.FromBig(st.msg.Value)
	if overflow {
		return nil, fmt.Errorf("%w: value overflows 256 bits", ErrInsufficientFunds)
	}

	var (
		ret   []byte
		vmerr error
	)
	if st.isContractCreation() {
		ret, _, st.gasRemaining, vmerr = st.evm.Create(sender, st.msg.Data, st.gasRemaining, value)
	} else {
		ret, st.gasRemaining, vmerr = st.evm.Call(sender, *st.msg.To, st.msg.Data, st.gasRemaining, value)
	}

	st.refundGas(rules)
	st.payTip(rules)

	return &ExecutionResult{
		UsedGas:    st.gasUsed(),
		Err:        vmerr,
		ReturnData: ret,
	}, nil
}

func (st *StateTransition) preCheck() error {
	msg := st.msg
	if !msg.SkipNonceChecks {
		stNonce := st.evm.StateDB.GetNonce(msg.From)
		if stNonce < msg.Nonce {
			return fmt.Errorf("%w: address %v, tx nonce %d, state nonce %d", ErrNonceTooHigh, msg.From, msg.Nonce, stNonce)
		}
		if stNonce > msg.Nonce {
			return fmt.Errorf("%w: address %v, tx nonce %d, state nonce %d", ErrNonceTooLow, msg.From, msg.Nonce, stNonce)
		}
		if stNonce+1 < stNonce {
			return fmt.Errorf("%w: address %v, nonce: %d", ErrNonceMax, msg.From, stNonce)
		}
	}

	rules := st.rules()
	if rules.IsEIP3607 && !msg.SkipFromEOACheck && st.evm.StateDB.GetCodeSize(msg.From) != 0 {
		return fmt.Errorf("%w: address %v, codehash: %s", ErrSenderNoEOA, msg.From, st.evm.StateDB.GetCodeHash(msg.From))
	}

	if rules.IsLondon {
		skip := st.evm.Config.NoBaseFee && msg.GasFeeCap.BitLen() == 0 && msg.GasTipCap.BitLen() == 0
		if !skip {
			if l := msg.GasFeeCap.BitLen(); l > 256 {
				return fmt.Errorf("%w: address %v, maxFeePerGas bit length: %d", ErrFeeCapVeryHigh, msg.From, l)
			}
			if l := msg.GasTipCap.BitLen(); l > 256 {
				return fmt.Errorf("%w: address %v, maxPriorityFeePerGas bit length: %d", ErrTipVeryHigh, msg.From, l)
			}
			if msg.GasFeeCap.Cmp(msg.GasTipCap) < 0 {
				return fmt.Errorf("%w: address %v, tip %s, feeCap %s", ErrTipAboveFeeCap, msg.From, msg.GasTipCap, msg.GasFeeCap)
			}
			if msg.GasFeeCap.Cmp(st.evm.Context.BaseFee) < 0 {
				return fmt.Errorf("%w: address %v, feeCap %s, baseFee %s", ErrFeeCapTooLow, msg.From, msg.GasFeeCap, st.evm.Context.BaseFee)
			}
		}
	}

	if rules.IsCancun && st.blobGasUsed() > 0 {
		skip := st.evm.Config.NoBaseFee && msg.BlobGasFeeCap != nil && msg.BlobGasFeeCap.BitLen() == 0
		if !skip && msg.BlobGasFeeCap.Cmp(st.evm.Context.BlobBaseFee) < 0 {
			return fmt.Errorf("%w: address %v blobGasFeeCap %v, blobBaseFee %v", ErrBlobFeeCapTooLow, msg.From, msg.BlobGasFeeCap, st.evm.Context.BlobBaseFee)
		}
	}

	if rules.IsEIP3860 && !st.evm.Config.NoMaxInitCodeSize && st.isContractCreation() && len(msg.Data) > params.MaxInitCodeSize {
		return fmt.Errorf("%w: length %v, limit %v", ErrMaxInitCodeSize, len(msg.Data), params.MaxInitCodeSize)
	}
	return nil
}

func (st *StateTransition) blobGasUsed() uint64 {
	return uint64(len(st.msg.BlobHashes)) * params.BlobTxBlobGasPerBlob
}

func (st *StateTransition) buyGas() error {
	mgval := new(big.Int).SetUint64(st.msg.GasLimit)
	mgval.Mul(mgval, st.msg.GasPrice)

	balanceCheck := new(big.Int).Set(mgval)
	if st.msg.GasFeeCap != nil {
		balanceCheck = new(big.Int).SetUint64(st.msg.GasLimit)
		balanceCheck.Mul(balanceCheck, st.msg.GasFeeCap)
	}
	balanceCheck.Add(balanceCheck, st.msg.Value)

	if st.rules().IsCancun {
		if blobGas := st.blobGasUsed(); blobGas > 0 {
			blobBalanceCheck := new(big.Int).SetUint64(blobGas)
			blobBalanceCheck.Mul(blobBalanceCheck, st.msg.BlobGasFeeCap)
			balanceCheck.Add(balanceCheck, blobBalanceCheck)

			blobFee := new(big.Int).SetUint64(blobGas)
			blobFee.Mul(blobFee, st.evm.Context.BlobBaseFee)
			mgval.Add(mgval, blobFee)
		}
	}

	if have := st.evm.StateDB.GetBalance(st.msg.From); have.Cmp(balanceCheck) < 0 {
		return fmt.Errorf("%w: address %v have %v want %v", ErrInsufficientFunds, st.msg.From, have, balanceCheck)
	}
	if err := st.gp.SubGas(st.msg.GasLimit); err != nil {
		return err
	}

	st.gasRemaining = st.msg.GasLimit
	st.initialGas = st.msg.GasLimit
	st.evm.StateDB.SubBalance(st.msg.From, mgval)
	return nil
}

func (st *StateTransition) refundGas(rules params.Rules) {
	refundQuotient := params.RefundQuotientEIP3529
	if !rules.IsLondon {
		refundQuotient = params.RefundQuotient
	}
	refund := st.gasUsed() / refundQuotient
	if maxRefund := st.evm.StateDB.GetRefund(); refund > maxRefund {
		refund = maxRefund
	}
	st.gasRemaining += refund

	remaining := new(big.Int).Mul(new(big.Int).SetUint64(st.gasRemaining), st.msg.GasPrice)
	st.evm.StateDB.AddBalance(st.msg.From, remaining)

	st.gp.AddGas(st.gasRemaining)
}

func (st *StateTransition) payTip(rules params.Rules) {
	if st.evm.Config.NoBaseFee && st.msg.GasFeeCap.Sign() == 0 && st.msg.GasTipCap.Sign() == 0 {
		return
	}

	effectiveTip := st.msg.GasPrice
	if rules.IsLondon {
		effectiveTip = bigMin(st.msg.GasTipCap, new(big.Int).Sub(st.msg.GasFeeCap, st.evm.Context.BaseFee))
	}
	fee := new(big.Int).SetUint64(st.gasUsed())
	fee.Mul(fee, effectiveTip)
	st.evm.StateDB.AddBalance(st.evm.Context.Coinbase, fee)
}

func (st *StateTransition) gasUsed() uint64 {
	return st.initialGas - st.gasRemaining
}
