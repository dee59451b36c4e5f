package vm

import (
	"errors"
	"fmt"
)

// errStopToken/errJumpToken are internal control-flow signals, not
// execution failures: Run() treats them specially instead of surfacing
// them to the caller (spec.md §4.5 "STOP/RETURN terminate the frame").
var (
	errStopToken = errors.New("stop token")
	errJumpToken = errors.New("jump token")
)

// Interpreter runs one EVM's bytecode fetch-decode-execute loop. It is
// reused across call frames within a single Call/Create dispatch chain,
// carrying only the cross-frame readOnly flag and the last frame's
// return data (spec.md §4.5 "RETURNDATA*").
type Interpreter struct {
	evm        *EVM
	readOnly   bool
	returnData []byte
}

func NewInterpreter(evm *EVM) *Interpreter {
	return &Interpreter{evm: evm}
}

func getOp(code []byte, pc uint64) OpCode {
	if pc < uint64(len(code)) {
		return OpCode(code[pc])
	}
	return STOP
}

// Run executes contract's code against input, returning its output or an
// execution error. readOnly propagates into nested STATICCALL frames and
// forbids any state-mutating opcode for the lifetime of this call
// (spec.md §4.5 "STATICCALL read-only enforcement").
func (in *Interpreter) Run(contract *Contract, input []byte, readOnly bool) ([]byte, error) {
	contract.Input = input

	if readOnly && !in.readOnly {
		in.readOnly = true
		defer func() { in.readOnly = false }()
	}

	prevReturnData := in.returnData
	in.returnData = nil
	defer func() { in.returnData = prevReturnData }()

	if len(contract.Code) == 0 {
		return nil, nil
	}

	var (
		op     OpCode
		mem    = NewMemory()
		stack  = newStack()
		pc     = uint64(0)
		result []byte
		err    error
	)
	defer returnStack(stack)

	for {
		op = getOp(contract.Code, pc)
		operation := in.evm.jumpTable[op]
		if operation == nil {
			return nil, fmt.Errorf("%w: 0x%x", ErrInvalidOpCode, byte(op))
		}
		if serr := stack.require(operation.minStack); serr != nil {
			return nil, serr
		}
		if stack.len() > operation.maxStack {
			return nil, ErrStackOverflow
		}

		var memSize uint64
		if operation.memorySize != nil {
			size, overflow := operation.memorySize(stack)
			if overflow {
				return nil, ErrGasUintOverflow
			}
			memSize = toWordSize(size) * 32
		}

		if !contract.UseGas(operation.constantGas) {
			return nil, ErrOutOfGas
		}
		if memSize > 0 {
			memCost, merr := memoryGasCost(mem, memSize)
			if merr != nil {
				return nil, merr
			}
			if !contract.UseGas(memCost) {
				return nil, ErrOutOfGas
			}
			mem.Resize(memSize)
		}
		if operation.dynamicGas != nil {
			dCost, derr := operation.dynamicGas(in.evm, contract, stack, mem, memSize)
			if derr != nil {
				return nil, derr
			}
			if !contract.UseGas(dCost) {
				return nil, ErrOutOfGas
			}
		}

		scope := &ScopeContext{Memory: mem, Stack: stack, Contract: contract}
		result, err = operation.execute(&pc, in, scope)
		if err != nil {
			if errors.Is(err, errJumpToken) {
				continue
			}
			if errors.Is(err, errStopToken) {
				err = nil
			}
			break
		}
		pc++
	}
	return result, err
}
