package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

func opStop(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	return nil, errStopToken
}

func opAdd(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Add(&x, y)
	return nil, nil
}

func opSub(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Sub(&x, y)
	return nil, nil
}

func opMul(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Mul(&x, y)
	return nil, nil
}

func opDiv(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Div(&x, y)
	return nil, nil
}

func opSdiv(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.SDiv(&x, y)
	return nil, nil
}

func opMod(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Mod(&x, y)
	return nil, nil
}

func opSmod(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.SMod(&x, y)
	return nil, nil
}

func opAddmod(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	x, y, z := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.peek()
	z.AddMod(&x, &y, z)
	return nil, nil
}

func opMulmod(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	x, y, z := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.peek()
	z.MulMod(&x, &y, z)
	return nil, nil
}

func opExp(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	base, exponent := scope.Stack.pop(), scope.Stack.peek()
	exponent.Exp(&base, exponent)
	return nil, nil
}

func opSignExtend(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	back, num := scope.Stack.pop(), scope.Stack.peek()
	num.ExtendSign(num, &back)
	return nil, nil
}

func opLt(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	if x.Lt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opGt(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	if x.Gt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSlt(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	if x.Slt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSgt(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	if x.Sgt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opEq(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	if x.Eq(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opIszero(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	x := scope.Stack.peek()
	if x.IsZero() {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil, nil
}

func opAnd(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.And(&x, y)
	return nil, nil
}

func opOr(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Or(&x, y)
	return nil, nil
}

func opXor(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Xor(&x, y)
	return nil, nil
}

func opNot(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	x := scope.Stack.peek()
	x.Not(x)
	return nil, nil
}

func opByte(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	th, val := scope.Stack.pop(), scope.Stack.peek()
	val.Byte(&th)
	return nil, nil
}

func opShl(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	shift, value := scope.Stack.pop(), scope.Stack.peek()
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil, nil
}

func opShr(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	shift, value := scope.Stack.pop(), scope.Stack.peek()
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil, nil
}

func opSar(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	shift, value := scope.Stack.pop(), scope.Stack.peek()
	if shift.GtUint64(256) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			value.SetAllOne()
		}
		return nil, nil
	}
	value.SRsh(value, uint(shift.Uint64()))
	return nil, nil
}

func opKeccak256(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	offset, size := scope.Stack.pop(), scope.Stack.peek()
	data := scope.Memory.GetPtr(int64(offset.Uint64()), int64(size.Uint64()))
	hash := crypto.Keccak256(data)
	size.SetBytes(hash)
	return nil, nil
}

func opAddress(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetBytes(scope.Contract.Address().Bytes()))
	return nil, nil
}

func opBalance(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	addr := scope.Stack.peek()
	address := common.Address(addr.Bytes20())
	balance, _ := uint256.FromBig(interp.evm.StateDB.GetBalance(address))
	addr.Set(balance)
	return nil, nil
}

func opOrigin(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetBytes(interp.evm.TxContext.Origin.Bytes()))
	return nil, nil
}

func opCaller(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetBytes(scope.Contract.CallerAddress.Bytes()))
	return nil, nil
}

func opCallValue(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(scope.Contract.Value().Clone())
	return nil, nil
}

func opCallDataLoad(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	x := scope.Stack.peek()
	if offset, overflow := x.Uint64WithOverflow(); !overflow {
		data := getData(scope.Contract.Input, offset, 32)
		x.SetBytes(data)
	} else {
		x.Clear()
	}
	return nil, nil
}

func opCallDataSize(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(uint64(len(scope.Contract.Input))))
	return nil, nil
}

func opCallDataCopy(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	var (
		memOffset  = scope.Stack.pop()
		dataOffset = scope.Stack.pop()
		length     = scope.Stack.pop()
	)
	dataOffset64, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		dataOffset64 = 0xffffffffffffffff
	}
	data := getData(scope.Contract.Input, dataOffset64, length.Uint64())
	scope.Memory.Set(memOffset.Uint64(), length.Uint64(), data)
	return nil, nil
}

func opCodeSize(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(uint64(len(scope.Contract.Code))))
	return nil, nil
}

func opCodeCopy(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	var (
		memOffset  = scope.Stack.pop()
		codeOffset = scope.Stack.pop()
		length     = scope.Stack.pop()
	)
	codeOffset64, overflow := codeOffset.Uint64WithOverflow()
	if overflow {
		codeOffset64 = 0xffffffffffffffff
	}
	codeCopy := getData(scope.Contract.Code, codeOffset64, length.Uint64())
	scope.Memory.Set(memOffset.Uint64(), length.Uint64(), codeCopy)
	return nil, nil
}

func opGasprice(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	v, _ := uint256.FromBig(interp.evm.TxContext.GasPrice)
	scope.Stack.push(v)
	return nil, nil
}

func opExtCodeSize(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	slot := scope.Stack.peek()
	addr := common.Address(slot.Bytes20())
	slot.SetUint64(uint64(interp.evm.StateDB.GetCodeSize(addr)))
	return nil, nil
}

func opExtCodeCopy(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	var (
		stack      = scope.Stack
		a          = stack.pop()
		memOffset  = stack.pop()
		codeOffset = stack.pop()
		length     = stack.pop()
	)
	codeOffset64, overflow := codeOffset.Uint64WithOverflow()
	if overflow {
		codeOffset64 = 0xffffffffffffffff
	}
	addr := common.Address(a.Bytes20())
	codeCopy := getData(interp.evm.StateDB.GetCode(addr), codeOffset64, length.Uint64())
	scope.Memory.Set(memOffset.Uint64(), length.Uint64(), codeCopy)
	return nil, nil
}

func opExtCodeHash(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	slot := scope.Stack.peek()
	address := common.Address(slot.Bytes20())
	if interp.evm.StateDB.Empty(address) {
		slot.Clear()
	} else {
		slot.SetBytes(interp.evm.StateDB.GetCodeHash(address).Bytes())
	}
	return nil, nil
}

func opReturnDataSize(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(uint64(len(interp.returnData))))
	return nil, nil
}

func opReturnDataCopy(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	var (
		memOffset  = scope.Stack.pop()
		dataOffset = scope.Stack.pop()
		length     = scope.Stack.pop()
	)
	offset64, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		return nil, ErrReturnDataOutOfBounds
	}
	end := new(uint256.Int).Add(&dataOffset, &length)
	end64, overflow := end.Uint64WithOverflow()
	if overflow || uint64(len(interp.returnData)) < end64 {
		return nil, ErrReturnDataOutOfBounds
	}
	scope.Memory.Set(memOffset.Uint64(), length.Uint64(), interp.returnData[offset64:end64])
	return nil, nil
}

func opBlockhash(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	num := scope.Stack.peek()
	num64, overflow := num.Uint64WithOverflow()
	if overflow {
		num.Clear()
		return nil, nil
	}
	upper := interp.evm.Context.BlockNumber.Uint64()
	var lower uint64
	if upper < 257 {
		lower = 0
	} else {
		lower = upper - 256
	}
	if num64 >= lower && num64 < upper {
		num.SetBytes(interp.evm.Context.GetHash(num64).Bytes())
	} else {
		num.Clear()
	}
	return nil, nil
}

func opCoinbase(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetBytes(interp.evm.Context.Coinbase.Bytes()))
	return nil, nil
}

func opTimestamp(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(interp.evm.Context.Time))
	return nil, nil
}

func opNumber(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	v, _ := uint256.FromBig(interp.evm.Context.BlockNumber)
	scope.Stack.push(v)
	return nil, nil
}

func opDifficulty(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	v, _ := uint256.FromBig(interp.evm.Context.Difficulty)
	scope.Stack.push(v)
	return nil, nil
}

func opRandom(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	v := new(uint256.Int).SetBytes(interp.evm.Context.Random.Bytes())
	scope.Stack.push(v)
	return nil, nil
}

func opGasLimit(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(interp.evm.Context.GasLimit))
	return nil, nil
}

func opChainID(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	v, _ := uint256.FromBig(interp.evm.chainConfig.ChainID)
	scope.Stack.push(v)
	return nil, nil
}

func opSelfBalance(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	balance, _ := uint256.FromBig(interp.evm.StateDB.GetBalance(scope.Contract.Address()))
	scope.Stack.push(balance)
	return nil, nil
}

func opBaseFee(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	v, _ := uint256.FromBig(interp.evm.Context.BaseFee)
	scope.Stack.push(v)
	return nil, nil
}

func opBlobBaseFee(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	v, _ := uint256.FromBig(interp.evm.Context.BlobBaseFee)
	scope.Stack.push(v)
	return nil, nil
}

func opBlobHash(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	idx := scope.Stack.peek()
	if idx.LtUint64(uint64(len(interp.evm.TxContext.BlobHashes))) {
		hash := interp.evm.TxContext.BlobHashes[idx.Uint64()]
		idx.SetBytes(hash.Bytes())
	} else {
		idx.Clear()
	}
	return nil, nil
}

func opPop(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.pop()
	return nil, nil
}

func opMload(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	v := scope.Stack.peek()
	offset := v.Uint64()
	v.SetBytes(scope.Memory.GetPtr(int64(offset), 32))
	return nil, nil
}

func opMstore(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	mStart, val := scope.Stack.pop(), scope.Stack.pop()
	scope.Memory.Set32(mStart.Uint64(), &val)
	return nil, nil
}

func opMstore8(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	off, val := scope.Stack.pop(), scope.Stack.pop()
	scope.Memory.store[off.Uint64()] = byte(val.Uint64())
	return nil, nil
}

func opMcopy(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	dst, src, size := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop()
	scope.Memory.Copy(dst.Uint64(), src.Uint64(), size.Uint64())
	return nil, nil
}

func opSload(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	loc := scope.Stack.peek()
	hash := common.Hash(loc.Bytes32())
	val := interp.evm.StateDB.GetState(scope.Contract.Address(), hash)
	loc.SetBytes(val.Bytes())
	return nil, nil
}

func opSstore(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	if interp.readOnly {
		return nil, ErrWriteProtection
	}
	loc, val := scope.Stack.pop(), scope.Stack.pop()
	interp.evm.StateDB.SetState(scope.Contract.Address(), common.Hash(loc.Bytes32()), common.Hash(val.Bytes32()))
	return nil, nil
}

func opTload(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	loc := scope.Stack.peek()
	hash := common.Hash(loc.Bytes32())
	val := interp.evm.StateDB.GetTransientState(scope.Contract.Address(), hash)
	loc.SetBytes(val.Bytes())
	return nil, nil
}

func opTstore(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	if interp.readOnly {
		return nil, ErrWriteProtection
	}
	loc, val := scope.Stack.pop(), scope.Stack.pop()
	interp.evm.StateDB.SetTransientState(scope.Contract.Address(), common.Hash(loc.Bytes32()), common.Hash(val.Bytes32()))
	return nil, nil
}

func opJump(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	pos := scope.Stack.pop()
	if !scope.Contract.validJumpdest(&pos) {
		return nil, ErrInvalidJump
	}
	*pc = pos.Uint64()
	return nil, errJumpToken
}

func opJumpi(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	pos, cond := scope.Stack.pop(), scope.Stack.pop()
	if !cond.IsZero() {
		if !scope.Contract.validJumpdest(&pos) {
			return nil, ErrInvalidJump
		}
		*pc = pos.Uint64()
		return nil, errJumpToken
	}
	return nil, nil
}

func opPc(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(*pc))
	return nil, nil
}

func opMsize(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(uint64(scope.Memory.Len())))
	return nil, nil
}

func opGas(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int).SetUint64(scope.Contract.Gas))
	return nil, nil
}

func opJumpdest(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	return nil, nil
}

func opPush0(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.push(new(uint256.Int))
	return nil, nil
}

func makePush(size uint64) executionFunc {
	return func(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
		codeLen := uint64(len(scope.Contract.Code))
		start := min(codeLen, *pc+1)
		end := min(codeLen, start+size)
		integer := new(uint256.Int)
		integer.SetBytes(common.RightPadBytes(scope.Contract.Code[start:end], int(size)))
		scope.Stack.push(integer)
		*pc += size
		return nil, nil
	}
}

func makeDup(n int) executionFunc {
	return func(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
		scope.Stack.dup(n)
		return nil, nil
	}
}

func makeSwap(n int) executionFunc {
	n++
	return func(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
		scope.Stack.swap(n)
		return nil, nil
	}
}

func makeLog(size int) executionFunc {
	return func(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
		if interp.readOnly {
			return nil, ErrWriteProtection
		}
		topics := make([]common.Hash, size)
		mStart, mSize := scope.Stack.pop(), scope.Stack.pop()
		for i := 0; i < size; i++ {
			addr := scope.Stack.pop()
			topics[i] = common.Hash(addr.Bytes32())
		}
		d := scope.Memory.GetCopy(int64(mStart.Uint64()), int64(mSize.Uint64()))
		interp.evm.addLog(scope.Contract.Address(), topics, d)
		return nil, nil
	}
}

func opCreate(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	if interp.readOnly {
		return nil, ErrWriteProtection
	}
	value, offset, size := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop()
	input := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	gas := scope.Contract.Gas
	gas -= gas / 64
	scope.Contract.UseGas(gas)

	res, addr, returnGas, suberr := interp.evm.Create(scope.Contract.Address(), input, gas, &value)
	pushCreateResult(scope.Stack, res, addr, suberr)
	scope.Contract.Gas += returnGas
	if suberr == ErrExecutionReverted {
		interp.returnData = res
		return res, nil
	}
	interp.returnData = nil
	return nil, nil
}

func opCreate2(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	if interp.readOnly {
		return nil, ErrWriteProtection
	}
	value, offset, size, salt := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop()
	input := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	gas := scope.Contract.Gas
	gas -= gas / 64
	scope.Contract.UseGas(gas)

	res, addr, returnGas, suberr := interp.evm.Create2(scope.Contract.Address(), input, gas, &value, &salt)
	pushCreateResult(scope.Stack, res, addr, suberr)
	scope.Contract.Gas += returnGas
	if suberr == ErrExecutionReverted {
		interp.returnData = res
		return res, nil
	}
	interp.returnData = nil
	return nil, nil
}

func pushCreateResult(stack *Stack, res []byte, addr common.Address, err error) {
	if err != nil && err != ErrExecutionReverted {
		stack.push(new(uint256.Int))
	} else {
		stack.push(new(uint256.Int).SetBytes(addr.Bytes()))
	}
}

func opCall(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	stack := scope.Stack
	gas, addr, value, inOffset, inSize, retOffset, retSize :=
		stack.pop(), stack.pop(), stack.pop(), stack.pop(), stack.pop(), stack.pop(), stack.pop()
	toAddr := common.Address(addr.Bytes20())
	if interp.readOnly && !value.IsZero() {
		return nil, ErrWriteProtection
	}
	args := scope.Memory.GetCopy(int64(inOffset.Uint64()), int64(inSize.Uint64()))

	gasCap := callGas(scope.Contract.Gas, gas.Uint64())
	ret, returnGas, err := interp.evm.Call(scope.Contract.Address(), toAddr, args, gasCap, &value)
	pushCallResult(stack, err)
	scope.Contract.Gas += returnGas
	writeCallResult(scope.Memory, retOffset.Uint64(), retSize.Uint64(), ret)
	interp.returnData = ret
	return nil, nil
}

func opCallCode(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	stack := scope.Stack
	gas, addr, value, inOffset, inSize, retOffset, retSize :=
		stack.pop(), stack.pop(), stack.pop(), stack.pop(), stack.pop(), stack.pop(), stack.pop()
	toAddr := common.Address(addr.Bytes20())
	args := scope.Memory.GetCopy(int64(inOffset.Uint64()), int64(inSize.Uint64()))

	gasCap := callGas(scope.Contract.Gas, gas.Uint64())
	ret, returnGas, err := interp.evm.CallCode(scope.Contract.Address(), toAddr, args, gasCap, &value)
	pushCallResult(stack, err)
	scope.Contract.Gas += returnGas
	writeCallResult(scope.Memory, retOffset.Uint64(), retSize.Uint64(), ret)
	interp.returnData = ret
	return nil, nil
}

func opDelegateCall(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	stack := scope.Stack
	gas, addr, inOffset, inSize, retOffset, retSize :=
		stack.pop(), stack.pop(), stack.pop(), stack.pop(), stack.pop(), stack.pop()
	toAddr := common.Address(addr.Bytes20())
	args := scope.Memory.GetCopy(int64(inOffset.Uint64()), int64(inSize.Uint64()))

	gasCap := callGas(scope.Contract.Gas, gas.Uint64())
	ret, returnGas, err := interp.evm.DelegateCall(scope.Contract, toAddr, args, gasCap)
	pushCallResult(stack, err)
	scope.Contract.Gas += returnGas
	writeCallResult(scope.Memory, retOffset.Uint64(), retSize.Uint64(), ret)
	interp.returnData = ret
	return nil, nil
}

func opStaticCall(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	stack := scope.Stack
	gas, addr, inOffset, inSize, retOffset, retSize :=
		stack.pop(), stack.pop(), stack.pop(), stack.pop(), stack.pop(), stack.pop()
	toAddr := common.Address(addr.Bytes20())
	args := scope.Memory.GetCopy(int64(inOffset.Uint64()), int64(inSize.Uint64()))

	gasCap := callGas(scope.Contract.Gas, gas.Uint64())
	ret, returnGas, err := interp.evm.StaticCall(scope.Contract.Address(), toAddr, args, gasCap)
	pushCallResult(stack, err)
	scope.Contract.Gas += returnGas
	writeCallResult(scope.Memory, retOffset.Uint64(), retSize.Uint64(), ret)
	interp.returnData = ret
	return nil, nil
}

func pushCallResult(stack *Stack, err error) {
	if err != nil {
		stack.push(new(uint256.Int))
	} else {
		stack.push(new(uint256.Int).SetOne())
	}
}

func writeCallResult(mem *Memory, retOffset, retSize uint64, ret []byte) {
	if retSize == 0 {
		return
	}
	n := retSize
	if uint64(len(ret)) < n {
		n = uint64(len(ret))
	}
	mem.Resize(retOffset + retSize)
	mem.Set(retOffset, n, ret[:n])
}

func callGas(available, requested uint64) uint64 {
	capped := available - available/64
	if requested < capped {
		return requested
	}
	return capped
}

func opReturn(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	offset, size := scope.Stack.pop(), scope.Stack.pop()
	ret := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	return ret, errStopToken
}

func opRevert(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	offset, size := scope.Stack.pop(), scope.Stack.pop()
	ret := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	interp.returnData = ret
	return ret, ErrExecutionReverted
}

func opInvalid(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	return nil, ErrInvalidOpCode
}

func opSelfdestruct(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error) {
	if interp.readOnly {
		return nil, ErrWriteProtection
	}
	beneficiary := scope.Stack.pop()
	balance := interp.evm.StateDB.GetBalance(scope.Contract.Address())
	beneficiaryAddr := common.Address(beneficiary.Bytes20())
	interp.evm.StateDB.AddBalance(beneficiaryAddr, balance)

	allowClearBalance := !interp.evm.chainRules.IsEIP6780 || interp.evm.StateDB.CreatedThisTx(scope.Contract.Address())
	if allowClearBalance {
		interp.evm.StateDB.SelfDestruct(scope.Contract.Address())
		interp.evm.StateDB.SubBalance(scope.Contract.Address(), balance)
	}
	return nil, errStopToken
}

func getData(data []byte, start uint64, size uint64) []byte {
	length := uint64(len(data))
	if start > length {
		start = length
	}
	end := start + size
	if end > length {
		end = length
	}
	return common.RightPadBytes(data[start:end], int(size))
}

func min(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
