package vm

import "github.com/evmforge/execution-core/params"

type (
	executionFunc  func(pc *uint64, interp *Interpreter, scope *ScopeContext) ([]byte, error)
	gasFunc        func(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error)
	memorySizeFunc func(stack *Stack) (size uint64, overflow bool)
)

// operation is one jump-table entry: the instruction's fixed cost, any
// dynamic cost function, stack depth bounds, and the memory expansion it
// requires before executing (spec.md §4.6 "per-opcode gas").
type operation struct {
	execute     executionFunc
	constantGas uint64
	dynamicGas  gasFunc
	minStack    int
	maxStack    int
	memorySize  memorySizeFunc
}

// JumpTable maps every possible opcode byte to its operation, nil for
// undefined opcodes on the active ruleset.
type JumpTable [256]*operation

// newInstructionSet builds the jump table for rules, starting from the
// Frontier baseline and layering each hardfork's additions/overrides on
// top, mirroring exactly which EIPs introduced which opcodes
// (spec.md §4.1 "Rules gates opcode availability").
func newInstructionSet(rules params.Rules) *JumpTable {
	jt := newFrontierInstructionSet()
	if rules.IsHomestead {
		enableHomestead(jt)
	}
	if rules.IsEIP150 {
		enableTangerineWhistle(jt)
	}
	if rules.IsByzantium {
		enableByzantium(jt)
	}
	if rules.IsConstantinople {
		enableConstantinople(jt)
	}
	if rules.IsIstanbul {
		enableIstanbul(jt)
	}
	if rules.IsBerlin {
		enableBerlin(jt)
	}
	if rules.IsLondon {
		enableLondon(jt)
	}
	if rules.IsMerge {
		enableMerge(jt)
	}
	if rules.IsShanghai {
		enableShanghai(jt)
	}
	if rules.IsCancun {
		enableCancun(jt)
	}
	return jt
}

func newFrontierInstructionSet() *JumpTable {
	jt := &JumpTable{}
	jt[STOP] = &operation{execute: opStop, minStack: 0, maxStack: 1024}
	jt[ADD] = &operation{execute: opAdd, constantGas: 3, minStack: 2, maxStack: 1024}
	jt[MUL] = &operation{execute: opMul, constantGas: 5, minStack: 2, maxStack: 1024}
	jt[SUB] = &operation{execute: opSub, constantGas: 3, minStack: 2, maxStack: 1024}
	jt[DIV] = &operation{execute: opDiv, constantGas: 5, minStack: 2, maxStack: 1024}
	jt[SDIV] = &operation{execute: opSdiv, constantGas: 5, minStack: 2, maxStack: 1024}
	jt[MOD] = &operation{execute: opMod, constantGas: 5, minStack: 2, maxStack: 1024}
	jt[SMOD] = &operation{execute: opSmod, constantGas: 5, minStack: 2, maxStack: 1024}
	jt[ADDMOD] = &operation{execute: opAddmod, constantGas: 8, minStack: 3, maxStack: 1024}
	jt[MULMOD] = &operation{execute: opMulmod, constantGas: 8, minStack: 3, maxStack: 1024}
	jt[EXP] = &operation{execute: opExp, dynamicGas: gasExpFrontier, minStack: 2, maxStack: 1024}
	jt[SIGNEXTEND] = &operation{execute: opSignExtend, constantGas: 5, minStack: 2, maxStack: 1024}
	jt[LT] = &operation{execute: opLt, constantGas: 3, minStack: 2, maxStack: 1024}
	jt[GT] = &operation{execute: opGt, constantGas: 3, minStack: 2, maxStack: 1024}
	jt[SLT] = &operation{execute: opSlt, constantGas: 3, minStack: 2, maxStack: 1024}
	jt[SGT] = &operation{execute: opSgt, constantGas: 3, minStack: 2, maxStack: 1024}
	jt[EQ] = &operation{execute: opEq, constantGas: 3, minStack: 2, maxStack: 1024}
	jt[ISZERO] = &operation{execute: opIszero, constantGas: 3, minStack: 1, maxStack: 1024}
	jt[AND] = &operation{execute: opAnd, constantGas: 3, minStack: 2, maxStack: 1024}
	jt[OR] = &operation{execute: opOr, constantGas: 3, minStack: 2, maxStack: 1024}
	jt[XOR] = &operation{execute: opXor, constantGas: 3, minStack: 2, maxStack: 1024}
	jt[NOT] = &operation{execute: opNot, constantGas: 3, minStack: 1, maxStack: 1024}
	jt[BYTE] = &operation{execute: opByte, constantGas: 3, minStack: 2, maxStack: 1024}
	jt[KECCAK256] = &operation{execute: opKeccak256, constantGas: params.Keccak256Gas, dynamicGas: gasKeccak256, minStack: 2, maxStack: 1024, memorySize: memorySizeKeccak256}
	jt[ADDRESS] = &operation{execute: opAddress, constantGas: 2, minStack: 0, maxStack: 1023}
	jt[BALANCE] = &operation{execute: opBalance, constantGas: params.BalanceGasFrontier, minStack: 1, maxStack: 1024}
	jt[ORIGIN] = &operation{execute: opOrigin, constantGas: 2, minStack: 0, maxStack: 1023}
	jt[CALLER] = &operation{execute: opCaller, constantGas: 2, minStack: 0, maxStack: 1023}
	jt[CALLVALUE] = &operation{execute: opCallValue, constantGas: 2, minStack: 0, maxStack: 1023}
	jt[CALLDATALOAD] = &operation{execute: opCallDataLoad, constantGas: 3, minStack: 1, maxStack: 1024}
	jt[CALLDATASIZE] = &operation{execute: opCallDataSize, constantGas: 2, minStack: 0, maxStack: 1023}
	jt[CALLDATACOPY] = &operation{execute: opCallDataCopy, constantGas: 3, dynamicGas: gasCallDataCopy, minStack: 3, maxStack: 1024, memorySize: memorySizeCallDataCopy}
	jt[CODESIZE] = &operation{execute: opCodeSize, constantGas: 2, minStack: 0, maxStack: 1023}
	jt[CODECOPY] = &operation{execute: opCodeCopy, constantGas: 3, dynamicGas: gasCodeCopy, minStack: 3, maxStack: 1024, memorySize: memorySizeCodeCopy}
	jt[GASPRICE] = &operation{execute: opGasprice, constantGas: 2, minStack: 0, maxStack: 1023}
	jt[EXTCODESIZE] = &operation{execute: opExtCodeSize, constantGas: params.ExtcodeSizeGasFrontier, minStack: 1, maxStack: 1024}
	jt[EXTCODECOPY] = &operation{execute: opExtCodeCopy, constantGas: params.ExtcodeCopyBaseFrontier, dynamicGas: gasExtCodeCopy, minStack: 4, maxStack: 1024, memorySize: memorySizeExtCodeCopy}
	jt[BLOCKHASH] = &operation{execute: opBlockhash, constantGas: 20, minStack: 1, maxStack: 1024}
	jt[COINBASE] = &operation{execute: opCoinbase, constantGas: 2, minStack: 0, maxStack: 1023}
	jt[TIMESTAMP] = &operation{execute: opTimestamp, constantGas: 2, minStack: 0, maxStack: 1023}
	jt[NUMBER] = &operation{execute: opNumber, constantGas: 2, minStack: 0, maxStack: 1023}
	jt[DIFFICULTY] = &operation{execute: opDifficulty, constantGas: 2, minStack: 0, maxStack: 1023}
	jt[GASLIMIT] = &operation{execute: opGasLimit, constantGas: 2, minStack: 0, maxStack: 1023}
	jt[POP] = &operation{execute: opPop, constantGas: 2, minStack: 1, maxStack: 1024}
	jt[MLOAD] = &operation{execute: opMload, constantGas: 3, dynamicGas: gasMLoad, minStack: 1, maxStack: 1024, memorySize: memorySizeMLoad}
	jt[MSTORE] = &operation{execute: opMstore, constantGas: 3, dynamicGas: gasMStore, minStack: 2, maxStack: 1024, memorySize: memorySizeMStore}
	jt[MSTORE8] = &operation{execute: opMstore8, constantGas: 3, dynamicGas: gasMStore8, minStack: 2, maxStack: 1024, memorySize: memorySizeMStore8}
	jt[SLOAD] = &operation{execute: opSload, constantGas: params.SloadGasFrontier, minStack: 1, maxStack: 1024}
	jt[SSTORE] = &operation{execute: opSstore, dynamicGas: gasSStoreFrontier, minStack: 2, maxStack: 1024}
	jt[JUMP] = &operation{execute: opJump, constantGas: 8, minStack: 1, maxStack: 1024}
	jt[JUMPI] = &operation{execute: opJumpi, constantGas: 10, minStack: 2, maxStack: 1024}
	jt[PC] = &operation{execute: opPc, constantGas: 2, minStack: 0, maxStack: 1023}
	jt[MSIZE] = &operation{execute: opMsize, constantGas: 2, minStack: 0, maxStack: 1023}
	jt[GAS] = &operation{execute: opGas, constantGas: 2, minStack: 0, maxStack: 1023}
	jt[JUMPDEST] = &operation{execute: opJumpdest, constantGas: params.JumpdestGas, minStack: 0, maxStack: 1024}
	jt[CREATE] = &operation{execute: opCreate, constantGas: params.CreateGas, dynamicGas: gasCreate, minStack: 3, maxStack: 1024, memorySize: memorySizeCreate}
	jt[CALL] = &operation{execute: opCall, constantGas: params.CallGasFrontier, dynamicGas: gasCallFrontier, minStack: 7, maxStack: 1024, memorySize: memorySizeCall}
	jt[CALLCODE] = &operation{execute: opCallCode, constantGas: params.CallGasFrontier, dynamicGas: gasCallCodeFrontier, minStack: 7, maxStack: 1024, memorySize: memorySizeCall}
	jt[RETURN] = &operation{execute: opReturn, minStack: 2, maxStack: 1024, memorySize: memorySizeReturn}
	jt[INVALID] = &operation{execute: opInvalid, minStack: 0, maxStack: 1024}
	jt[SELFDESTRUCT] = &operation{execute: opSelfdestruct, constantGas: params.SelfdestructGasEIP150 / 5, minStack: 1, maxStack: 1024}

	for i := byte(1); i <= 32; i++ {
		jt[PUSH1+OpCode(i-1)] = &operation{execute: makePush(uint64(i)), constantGas: 3, minStack: 0, maxStack: 1024}
	}
	for i := 1; i <= 16; i++ {
		jt[DUP1+OpCode(i-1)] = &operation{execute: makeDup(i), constantGas: 3, minStack: i, maxStack: 1024}
		jt[SWAP1+OpCode(i-1)] = &operation{execute: makeSwap(i), constantGas: 3, minStack: i + 1, maxStack: 1024}
	}
	for i := 0; i <= 4; i++ {
		jt[LOG0+OpCode(i)] = &operation{execute: makeLog(i), dynamicGas: makeGasLog(i), minStack: 2 + i, maxStack: 1024, memorySize: memorySizeLog}
	}
	return jt
}

func enableHomestead(jt *JumpTable) {
	jt[DELEGATECALL] = &operation{execute: opDelegateCall, constantGas: params.CallGasFrontier, dynamicGas: gasDelegateCall, minStack: 6, maxStack: 1024, memorySize: memorySizeCallNoValue}
}

func enableTangerineWhistle(jt *JumpTable) {
	jt[BALANCE].constantGas = params.BalanceGasEIP150
	jt[EXTCODESIZE].constantGas = params.ExtcodeSizeGasEIP150
	jt[EXTCODECOPY].constantGas = params.ExtcodeCopyBaseEIP150
	jt[SLOAD].constantGas = params.SloadGasEIP150
	jt[CALL].constantGas = params.CallGasEIP150
	jt[CALLCODE].constantGas = params.CallGasEIP150
	jt[DELEGATECALL].constantGas = params.CallGasEIP150
	jt[SELFDESTRUCT].dynamicGas = gasSelfdestructEIP150
}

func enableByzantium(jt *JumpTable) {
	jt[STATICCALL] = &operation{execute: opStaticCall, constantGas: params.CallGasEIP150, dynamicGas: gasStaticCall, minStack: 6, maxStack: 1024, memorySize: memorySizeCallNoValue}
	jt[RETURNDATASIZE] = &operation{execute: opReturnDataSize, constantGas: 2, minStack: 0, maxStack: 1023}
	jt[RETURNDATACOPY] = &operation{execute: opReturnDataCopy, constantGas: 3, dynamicGas: gasReturnDataCopy, minStack: 3, maxStack: 1024, memorySize: memorySizeReturnDataCopy}
	jt[REVERT] = &operation{execute: opRevert, minStack: 2, maxStack: 1024, memorySize: memorySizeReturn}
}

func enableConstantinople(jt *JumpTable) {
	jt[SHL] = &operation{execute: opShl, constantGas: 3, minStack: 2, maxStack: 1024}
	jt[SHR] = &operation{execute: opShr, constantGas: 3, minStack: 2, maxStack: 1024}
	jt[SAR] = &operation{execute: opSar, constantGas: 3, minStack: 2, maxStack: 1024}
	jt[EXTCODEHASH] = &operation{execute: opExtCodeHash, constantGas: params.ExtcodeHashGasConstantinople, minStack: 1, maxStack: 1024}
	jt[CREATE2] = &operation{execute: opCreate2, constantGas: params.Create2Gas, dynamicGas: gasCreate2, minStack: 4, maxStack: 1024, memorySize: memorySizeCreate2}
}

func enableIstanbul(jt *JumpTable) {
	jt[CHAINID] = &operation{execute: opChainID, constantGas: 2, minStack: 0, maxStack: 1023}
	jt[SELFBALANCE] = &operation{execute: opSelfBalance, constantGas: 5, minStack: 0, maxStack: 1023}
	jt[BALANCE].constantGas = params.BalanceGasEIP1884
	jt[SLOAD].constantGas = params.SloadGasEIP1884
	jt[EXTCODEHASH].constantGas = params.ExtcodeHashGasEIP1884
	jt[SSTORE].dynamicGas = gasSStoreEIP2200
}

func enableBerlin(jt *JumpTable) {
	jt[SLOAD] = &operation{execute: opSload, dynamicGas: gasSLoadEIP2929, minStack: 1, maxStack: 1024}
	jt[EXTCODESIZE] = &operation{execute: opExtCodeSize, dynamicGas: gasEIP2929AccountCheck, minStack: 1, maxStack: 1024}
	jt[EXTCODECOPY] = &operation{execute: opExtCodeCopy, dynamicGas: gasExtCodeCopyEIP2929, minStack: 4, maxStack: 1024, memorySize: memorySizeExtCodeCopy}
	jt[EXTCODEHASH] = &operation{execute: opExtCodeHash, dynamicGas: gasEIP2929AccountCheck, minStack: 1, maxStack: 1024}
	jt[BALANCE] = &operation{execute: opBalance, dynamicGas: gasEIP2929AccountCheck, minStack: 1, maxStack: 1024}
	jt[CALL].dynamicGas = gasCallEIP2929
	jt[CALLCODE].dynamicGas = gasCallCodeEIP2929
	jt[DELEGATECALL].dynamicGas = gasDelegateCallEIP2929
	jt[STATICCALL].dynamicGas = gasStaticCallEIP2929
	jt[SSTORE].dynamicGas = gasSStoreEIP2929
	jt[SELFDESTRUCT].dynamicGas = gasSelfdestructEIP2929
}

func enableLondon(jt *JumpTable) {
	jt[BASEFEE] = &operation{execute: opBaseFee, constantGas: 2, minStack: 0, maxStack: 1023}
	jt[SSTORE].dynamicGas = gasSStoreEIP3529
	jt[SELFDESTRUCT].dynamicGas = gasSelfdestructEIP3529
}

func enableMerge(jt *JumpTable) {
	jt[DIFFICULTY] = &operation{execute: opRandom, constantGas: 2, minStack: 0, maxStack: 1023}
}

func enableShanghai(jt *JumpTable) {
	jt[PUSH0] = &operation{execute: opPush0, constantGas: 2, minStack: 0, maxStack: 1024}
}

func enableCancun(jt *JumpTable) {
	jt[TLOAD] = &operation{execute: opTload, constantGas: params.WarmStorageReadCostEIP2929, minStack: 1, maxStack: 1024}
	jt[TSTORE] = &operation{execute: opTstore, constantGas: params.WarmStorageReadCostEIP2929, minStack: 2, maxStack: 1024}
	jt[MCOPY] = &operation{execute: opMcopy, constantGas: 3, dynamicGas: gasMcopy, minStack: 3, maxStack: 1024, memorySize: memorySizeMcopy}
	jt[BLOBHASH] = &operation{execute: opBlobHash, constantGas: 3, minStack: 1, maxStack: 1024}
	jt[BLOBBASEFEE] = &operation{execute: opBlobBaseFee, constantGas: 2, minStack: 0, maxStack: 1023}
}
