package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/evmforge/execution-core/params"
)

// toWordSize rounds size up to the nearest 32-byte word count.
func toWordSize(size uint64) uint64 {
	if size > (1<<64-31)/1 {
		return (1<<64 - 1) / 32
	}
	return (size + 31) / 32
}

// memoryGasCost is the EIP-150-era quadratic memory expansion formula,
// charged once whenever an access grows memory past its previous size
// (spec.md §4.6 "memory expansion gas").
func memoryGasCost(mem *Memory, newMemSize uint64) (uint64, error) {
	if newMemSize == 0 {
		return 0, nil
	}
	if newMemSize > 0x1FFFFFFFE0 {
		return 0, ErrGasUintOverflow
	}
	newMemSizeWords := toWordSize(newMemSize)
	newMemSize = newMemSizeWords * 32

	if newMemSize > uint64(mem.Len()) {
		square := newMemSizeWords * newMemSizeWords
		linCoef := newMemSizeWords * params.MemoryGas
		quadCoef := square / 512
		newTotalFee := linCoef + quadCoef

		fee := newTotalFee - mem.lastGasCost
		mem.lastGasCost = newTotalFee
		return fee, nil
	}
	return 0, nil
}

func constU256(v uint64) *uint256.Int { return new(uint256.Int).SetUint64(v) }

// -- memorySize functions: highest byte offset an op will touch -----------

func memorySizeKeccak256(stack *Stack) (uint64, bool) {
	return calcMemSize32(stack.Back(0), stack.Back(1))
}

func memorySizeCallDataCopy(stack *Stack) (uint64, bool) {
	return calcMemSize32(stack.Back(0), stack.Back(2))
}

func memorySizeCodeCopy(stack *Stack) (uint64, bool) {
	return calcMemSize32(stack.Back(0), stack.Back(2))
}

func memorySizeExtCodeCopy(stack *Stack) (uint64, bool) {
	return calcMemSize32(stack.Back(1), stack.Back(3))
}

func memorySizeReturnDataCopy(stack *Stack) (uint64, bool) {
	return calcMemSize32(stack.Back(0), stack.Back(2))
}

func memorySizeMLoad(stack *Stack) (uint64, bool) {
	return calcMemSize32(stack.Back(0), constU256(32))
}

func memorySizeMStore(stack *Stack) (uint64, bool) {
	return calcMemSize32(stack.Back(0), constU256(32))
}

func memorySizeMStore8(stack *Stack) (uint64, bool) {
	return calcMemSize32(stack.Back(0), constU256(1))
}

func memorySizeCreate(stack *Stack) (uint64, bool) {
	return calcMemSize32(stack.Back(1), stack.Back(2))
}

func memorySizeCreate2(stack *Stack) (uint64, bool) {
	return calcMemSize32(stack.Back(1), stack.Back(2))
}

func memorySizeReturn(stack *Stack) (uint64, bool) {
	return calcMemSize32(stack.Back(0), stack.Back(1))
}

func memorySizeLog(stack *Stack) (uint64, bool) {
	return calcMemSize32(stack.Back(0), stack.Back(1))
}

func memorySizeMcopy(stack *Stack) (uint64, bool) {
	dst, src, size := stack.Back(0), stack.Back(1), stack.Back(2)
	dstSize, overflow := calcMemSize32(dst, size)
	if overflow {
		return 0, true
	}
	srcSize, overflow := calcMemSize32(src, size)
	if overflow {
		return 0, true
	}
	if dstSize > srcSize {
		return dstSize, false
	}
	return srcSize, false
}

// memorySizeCall covers CALL/CALLCODE: gas, addr, value, inOffset, inSize, retOffset, retSize.
func memorySizeCall(stack *Stack) (uint64, bool) {
	inSize, overflow := calcMemSize32(stack.Back(3), stack.Back(4))
	if overflow {
		return 0, true
	}
	outSize, overflow := calcMemSize32(stack.Back(5), stack.Back(6))
	if overflow {
		return 0, true
	}
	if inSize > outSize {
		return inSize, false
	}
	return outSize, false
}

// memorySizeCallNoValue covers DELEGATECALL/STATICCALL, which lack the
// value argument CALL/CALLCODE carry: gas, addr, inOffset, inSize, retOffset, retSize.
func memorySizeCallNoValue(stack *Stack) (uint64, bool) {
	inSize, overflow := calcMemSize32(stack.Back(2), stack.Back(3))
	if overflow {
		return 0, true
	}
	outSize, overflow := calcMemSize32(stack.Back(4), stack.Back(5))
	if overflow {
		return 0, true
	}
	if inSize > outSize {
		return inSize, false
	}
	return outSize, false
}

// -- dynamicGas functions: cost beyond constantGas and memory expansion ----

func gasExpFrontier(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	exponent := stack.Back(1)
	byteLen := uint64((exponent.BitLen() + 7) / 8)
	return params.ExpGas + byteLen*params.ExpByteFrontier, nil
}

func gasKeccak256(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	size := stack.Back(1)
	words := toWordSize(size.Uint64())
	return words * params.Keccak256WordGas, nil
}

func gasCallDataCopy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	words := toWordSize(stack.Back(2).Uint64())
	return words * params.CopyGas, nil
}

func gasCodeCopy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	words := toWordSize(stack.Back(2).Uint64())
	return words * params.CopyGas, nil
}

func gasExtCodeCopy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	words := toWordSize(stack.Back(3).Uint64())
	return words * params.CopyGas, nil
}

func gasReturnDataCopy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	words := toWordSize(stack.Back(2).Uint64())
	return words * params.CopyGas, nil
}

func gasMcopy(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	words := toWordSize(stack.Back(2).Uint64())
	return words * params.CopyGas, nil
}

func gasMLoad(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return 0, nil
}

func gasMStore(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return 0, nil
}

func gasMStore8(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return 0, nil
}

func gasEIP2929AccountCheck(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	addr := common.Address(stack.peek().Bytes20())
	if evm.StateDB.AddressInAccessList(addr) {
		return params.WarmStorageReadCostEIP2929, nil
	}
	evm.StateDB.AddAddressToAccessList(addr)
	return params.ColdAccountAccessCostEIP2929, nil
}

func gasExtCodeCopyEIP2929(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := gasExtCodeCopy(evm, contract, stack, mem, memorySize)
	if err != nil {
		return 0, err
	}
	addr := common.Address(stack.Back(0).Bytes20())
	if evm.StateDB.AddressInAccessList(addr) {
		return gas + params.WarmStorageReadCostEIP2929, nil
	}
	evm.StateDB.AddAddressToAccessList(addr)
	return gas + params.ColdAccountAccessCostEIP2929, nil
}

func gasSLoadEIP2929(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	loc := stack.peek()
	slot := common.Hash(loc.Bytes32())
	addr := contract.Address()
	_, slotWarm := evm.StateDB.SlotInAccessList(addr, slot)
	if slotWarm {
		return params.WarmStorageReadCostEIP2929, nil
	}
	evm.StateDB.AddSlotToAccessList(addr, slot)
	return params.ColdSloadCostEIP2929, nil
}

func gasSStoreFrontier(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	loc, val := stack.Back(0), stack.Back(1)
	key := common.Hash(loc.Bytes32())
	addr := contract.Address()
	current := evm.StateDB.GetState(addr, key)
	value := common.Hash(val.Bytes32())

	switch {
	case current == (common.Hash{}) && value != (common.Hash{}):
		return params.SstoreSetGas, nil
	case current != (common.Hash{}) && value == (common.Hash{}):
		evm.StateDB.AddRefund(params.SstoreRefundGas)
		return params.SstoreClearGas, nil
	default:
		return params.SstoreResetGas, nil
	}
}

// gasSStoreEIP2200 implements the EIP-2200 net-gas-metering SSTORE rule,
// gated behind a sentry minimum so a call forwarded exactly 2300 gas (the
// classic "stipend") can never perform a state-changing SSTORE.
func gasSStoreEIP2200(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	if contract.Gas <= params.SstoreSentryGasEIP2200 {
		return 0, ErrOutOfGas
	}
	loc, val := stack.Back(0), stack.Back(1)
	key := common.Hash(loc.Bytes32())
	addr := contract.Address()
	current := evm.StateDB.GetState(addr, key)
	value := common.Hash(val.Bytes32())

	if current == value {
		return params.NetSstoreNoopGas, nil
	}
	original := evm.StateDB.GetCommittedState(addr, key)
	if original == current {
		if original == (common.Hash{}) {
			return params.NetSstoreInitGas, nil
		}
		if value == (common.Hash{}) {
			evm.StateDB.AddRefund(params.NetSstoreClearRefund)
		}
		return params.NetSstoreCleanGas, nil
	}
	if original != (common.Hash{}) {
		if current == (common.Hash{}) {
			evm.StateDB.SubRefund(params.NetSstoreClearRefund)
		}
		if value == (common.Hash{}) {
			evm.StateDB.AddRefund(params.NetSstoreClearRefund)
		}
	}
	if original == value {
		if original == (common.Hash{}) {
			evm.StateDB.AddRefund(params.NetSstoreResetClearRefund)
		} else {
			evm.StateDB.AddRefund(params.NetSstoreResetRefund)
		}
	}
	return params.NetSstoreDirtyGas, nil
}

// gasSStoreEIP2929 layers the EIP-2929 cold-slot surcharge on top of the
// EIP-2200 net-metering rule.
func gasSStoreEIP2929(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	if contract.Gas <= params.SstoreSentryGasEIP2200 {
		return 0, ErrOutOfGas
	}
	loc := stack.Back(0)
	key := common.Hash(loc.Bytes32())
	addr := contract.Address()

	var coldCost uint64
	if _, slotWarm := evm.StateDB.SlotInAccessList(addr, key); !slotWarm {
		evm.StateDB.AddSlotToAccessList(addr, key)
		coldCost = params.ColdSloadCostEIP2929
	}
	gas, err := gasSStoreEIP2200(evm, contract, stack, mem, memorySize)
	if err != nil {
		return 0, err
	}
	return gas + coldCost, nil
}

// gasSStoreEIP3529 is EIP-2929's SSTORE with EIP-3529's reduced refund caps.
func gasSStoreEIP3529(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	if contract.Gas <= params.SstoreSentryGasEIP2200 {
		return 0, ErrOutOfGas
	}
	loc, val := stack.Back(0), stack.Back(1)
	key := common.Hash(loc.Bytes32())
	addr := contract.Address()

	var coldCost uint64
	if _, slotWarm := evm.StateDB.SlotInAccessList(addr, key); !slotWarm {
		evm.StateDB.AddSlotToAccessList(addr, key)
		coldCost = params.ColdSloadCostEIP2929
	}

	current := evm.StateDB.GetState(addr, key)
	value := common.Hash(val.Bytes32())
	if current == value {
		return params.WarmStorageReadCostEIP2929 + coldCost, nil
	}
	original := evm.StateDB.GetCommittedState(addr, key)
	if original == current {
		if original == (common.Hash{}) {
			return params.SstoreSetGasEIP2200 + coldCost, nil
		}
		if value == (common.Hash{}) {
			evm.StateDB.AddRefund(params.SstoreClearsScheduleRefundEIP3529)
		}
		return params.SstoreResetGasEIP2200 - params.ColdSloadCostEIP2929 + coldCost, nil
	}
	if original != (common.Hash{}) {
		if current == (common.Hash{}) {
			evm.StateDB.SubRefund(params.SstoreClearsScheduleRefundEIP3529)
		}
		if value == (common.Hash{}) {
			evm.StateDB.AddRefund(params.SstoreClearsScheduleRefundEIP3529)
		}
	}
	if original == value {
		if original == (common.Hash{}) {
			evm.StateDB.AddRefund(params.SstoreSetGasEIP2200 - params.WarmStorageReadCostEIP2929)
		} else {
			evm.StateDB.AddRefund(params.SstoreResetGasEIP2200 - params.ColdSloadCostEIP2929 - params.WarmStorageReadCostEIP2929)
		}
	}
	return params.WarmStorageReadCostEIP2929 + coldCost, nil
}

func gasCreate(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	size := stack.Back(2).Uint64()
	if evm.chainRules.IsEIP3860 {
		// InitcodeWordGas is charged regardless of Config.NoMaxInitCodeSize —
		// only the hard-cap comparison is skippable for simulation callers.
		if !evm.Config.NoMaxInitCodeSize && size > params.MaxInitCodeSize {
			return 0, ErrMaxInitCodeSizeExceeded
		}
		return toWordSize(size) * params.InitCodeWordGas, nil
	}
	return 0, nil
}

func gasCreate2(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	size := stack.Back(2).Uint64()
	words := toWordSize(size)
	if evm.chainRules.IsEIP3860 {
		if !evm.Config.NoMaxInitCodeSize && size > params.MaxInitCodeSize {
			return 0, ErrMaxInitCodeSizeExceeded
		}
		return words*params.Keccak256WordGas + words*params.InitCodeWordGas, nil
	}
	return words * params.Keccak256WordGas, nil
}

func gasCallFrontier(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return callValueAndNewAccountGas(evm, stack, true)
}

func gasCallCodeFrontier(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	value := stack.Back(2)
	var gas uint64
	if !value.IsZero() {
		gas += params.CallValueTransferGas
	}
	return gas, nil
}

func gasDelegateCall(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return 0, nil
}

func gasStaticCall(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return 0, nil
}

func callValueAndNewAccountGas(evm *EVM, stack *Stack, chargeNewAccount bool) (uint64, error) {
	addr := common.Address(stack.Back(1).Bytes20())
	value := stack.Back(2)
	var gas uint64
	if !value.IsZero() {
		gas += params.CallValueTransferGas
	}
	if chargeNewAccount && evm.StateDB.Empty(addr) && !value.IsZero() {
		gas += params.CallNewAccountGas
	}
	return gas, nil
}

func gasCallEIP2929(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := callValueAndNewAccountGas(evm, stack, true)
	if err != nil {
		return 0, err
	}
	addr := common.Address(stack.Back(1).Bytes20())
	if evm.StateDB.AddressInAccessList(addr) {
		return gas + params.WarmStorageReadCostEIP2929, nil
	}
	evm.StateDB.AddAddressToAccessList(addr)
	return gas + params.ColdAccountAccessCostEIP2929, nil
}

func gasCallCodeEIP2929(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	value := stack.Back(2)
	var gas uint64
	if !value.IsZero() {
		gas += params.CallValueTransferGas
	}
	addr := common.Address(stack.Back(1).Bytes20())
	if evm.StateDB.AddressInAccessList(addr) {
		return gas + params.WarmStorageReadCostEIP2929, nil
	}
	evm.StateDB.AddAddressToAccessList(addr)
	return gas + params.ColdAccountAccessCostEIP2929, nil
}

func gasDelegateCallEIP2929(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	addr := common.Address(stack.Back(1).Bytes20())
	if evm.StateDB.AddressInAccessList(addr) {
		return params.WarmStorageReadCostEIP2929, nil
	}
	evm.StateDB.AddAddressToAccessList(addr)
	return params.ColdAccountAccessCostEIP2929, nil
}

func gasStaticCallEIP2929(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	addr := common.Address(stack.Back(1).Bytes20())
	if evm.StateDB.AddressInAccessList(addr) {
		return params.WarmStorageReadCostEIP2929, nil
	}
	evm.StateDB.AddAddressToAccessList(addr)
	return params.ColdAccountAccessCostEIP2929, nil
}

func gasSelfdestructEIP150(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	var gas uint64
	beneficiary := common.Address(stack.Back(0).Bytes20())
	if evm.StateDB.Empty(beneficiary) && evm.StateDB.GetBalance(contract.Address()).Sign() != 0 {
		gas += params.CreateBySelfdestructGas
	}
	if !evm.StateDB.HasSelfDestructed(contract.Address()) {
		evm.StateDB.AddRefund(params.SelfdestructRefundGas)
	}
	return gas, nil
}

func gasSelfdestructEIP2929(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := gasSelfdestructEIP150(evm, contract, stack, mem, memorySize)
	if err != nil {
		return 0, err
	}
	beneficiary := common.Address(stack.Back(0).Bytes20())
	if evm.StateDB.AddressInAccessList(beneficiary) {
		return gas, nil
	}
	evm.StateDB.AddAddressToAccessList(beneficiary)
	return gas + params.ColdAccountAccessCostEIP2929, nil
}

// gasSelfdestructEIP3529 is EIP-2929's SELFDESTRUCT without the
// self-destruct refund EIP-3529 abolished.
func gasSelfdestructEIP3529(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	var gas uint64
	beneficiary := common.Address(stack.Back(0).Bytes20())
	if evm.StateDB.Empty(beneficiary) && evm.StateDB.GetBalance(contract.Address()).Sign() != 0 {
		gas += params.CreateBySelfdestructGas
	}
	if evm.StateDB.AddressInAccessList(beneficiary) {
		return gas, nil
	}
	evm.StateDB.AddAddressToAccessList(beneficiary)
	return gas + params.ColdAccountAccessCostEIP2929, nil
}

func makeGasLog(n int) gasFunc {
	return func(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
		size := stack.Back(1).Uint64()
		gas := uint64(n) * params.LogTopicGas
		gas += size * params.LogDataGas
		return gas, nil
	}
}
