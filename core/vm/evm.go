package vm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/evmforge/execution-core/core/state"
	"github.com/evmforge/execution-core/core/types"
	"github.com/evmforge/execution-core/params"
)

// maxCallDepth is the EIP-150-era hard limit on nested CALL/CREATE
// frames (spec.md §4.5 "depth").
const maxCallDepth = 1024

// BlockContext carries the per-block data opcodes like COINBASE, NUMBER
// and BASEFEE read; it never changes across the calls within one block
// build (spec.md §4.2 "execution context").
type BlockContext struct {
	GetHash func(uint64) common.Hash

	Coinbase    common.Address
	GasLimit    uint64
	BlockNumber *big.Int
	Time        uint64
	Difficulty  *big.Int
	Random      common.Hash // post-merge RANDAO output, read by PREVRANDAO
	BaseFee     *big.Int
	BlobBaseFee *big.Int
}

// TxContext carries the per-transaction data opcodes like ORIGIN,
// GASPRICE and BLOBHASH read.
type TxContext struct {
	Origin     common.Address
	GasPrice   *big.Int
	BlobHashes []common.Hash
}

// Config holds debug/simulation overrides that bypass individual
// protocol checks without touching the hardfork schedule itself —
// e.g. a gas estimator that wants EIP-3860 gas charged but not enforced
// as a hard failure.
type Config struct {
	NoBaseFee          bool // skip the base-fee check in transaction validation
	NoMaxInitCodeSize  bool // skip the EIP-3860 init-code size cap (InitCodeWordGas is still charged)
}

// EVM is one message call's execution environment: the active jump
// table, the precompile set, and the StateDB every frame in the call
// tree shares (spec.md §4 "Execution").
type EVM struct {
	Context   BlockContext
	TxContext TxContext
	StateDB   *state.StateDB

	depth int

	chainConfig *params.ChainConfig
	chainRules  params.Rules
	jumpTable   *JumpTable
	interpreter *Interpreter
	precompiles map[common.Address]PrecompiledContract
	Config      Config

	abort bool // set by an external caller (e.g. a timed-out payload build) to stop execution ASAP
}

func NewEVM(blockCtx BlockContext, txCtx TxContext, statedb *state.StateDB, chainConfig *params.ChainConfig, config Config) *EVM {
	rules := chainConfig.Rules()
	evm := &EVM{
		Context:     blockCtx,
		TxContext:   txCtx,
		StateDB:     statedb,
		chainConfig: chainConfig,
		chainRules:  rules,
		Config:      config,
	}
	evm.jumpTable = newInstructionSet(rules)
	evm.interpreter = NewInterpreter(evm)
	evm.precompiles = activePrecompiles(rules)
	return evm
}

// SetTxContext replaces the per-transaction context, so one EVM can run
// another transaction of the same block without rebuilding its jump table.
func (evm *EVM) SetTxContext(txCtx TxContext) { evm.TxContext = txCtx }

func (evm *EVM) ChainConfig() *params.ChainConfig { return evm.chainConfig }

func (evm *EVM) Cancel() { evm.abort = true }

func (evm *EVM) addLog(address common.Address, topics []common.Hash, data []byte) {
	evm.StateDB.AddLog(&types.Log{
		Address:     address,
		Topics:      topics,
		Data:        data,
		BlockNumber: evm.Context.BlockNumber.Uint64(),
	})
}

func (evm *EVM) canTransfer(addr common.Address, amount *big.Int) bool {
	return evm.StateDB.GetBalance(addr).Cmp(amount) >= 0
}

func (evm *EVM) transfer(from, to common.Address, amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	evm.StateDB.SubBalance(from, amount)
	evm.StateDB.AddBalance(to, amount)
}

// Call executes a CALL message against addr's code with StateDB changes
// finalized on success and rolled back on any error (spec.md §4.5 "CALL").
func (evm *EVM) Call(caller common.Address, addr common.Address, input []byte, gas uint64, value *uint256.Int) ([]byte, uint64, error) {
	if evm.depth > maxCallDepth {
		return nil, gas, ErrDepth
	}
	valueBig := value.ToBig()
	if value.Sign() != 0 && !evm.canTransfer(caller, valueBig) {
		return nil, gas, ErrInsufficientBalance
	}
	snapshot := evm.StateDB.Snapshot()

	if !evm.StateDB.Exist(addr) {
		evm.StateDB.CreateAccount(addr)
	}
	evm.transfer(caller, addr, valueBig)

	if pc, isPrecompile := evm.precompiles[addr]; isPrecompile {
		ret, leftOver, err := evm.runPrecompiled(pc, input, gas)
		evm.finish(snapshot, err)
		return ret, leftOver, err
	}

	code := evm.StateDB.GetCode(addr)
	if len(code) == 0 {
		evm.StateDB.Finalise(snapshot)
		return nil, gas, nil
	}

	contract := NewContract(AccountRef(caller), AccountRef(addr), value, gas)
	contract.SetCallCode(&addr, evm.StateDB.GetCodeHash(addr), code)

	evm.depth++
	ret, err := evm.interpreter.Run(contract, input, false)
	evm.depth--

	evm.finish(snapshot, err)
	return ret, contract.Gas, err
}

func (evm *EVM) finish(snapshot int, err error) {
	if err != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
		return
	}
	evm.StateDB.Finalise(snapshot)
}

func (evm *EVM) runPrecompiled(p PrecompiledContract, input []byte, gas uint64) ([]byte, uint64, error) {
	requiredGas := p.RequiredGas(input)
	if gas < requiredGas {
		return nil, 0, ErrOutOfGas
	}
	ret, err := p.Run(input)
	return ret, gas - requiredGas, err
}

// CallCode executes addr's code in the caller's storage/address context
// but, unlike DELEGATECALL, with its own msg.value and msg.sender
// (spec.md §4.5 "CALLCODE").
func (evm *EVM) CallCode(caller common.Address, addr common.Address, input []byte, gas uint64, value *uint256.Int) ([]byte, uint64, error) {
	if evm.depth > maxCallDepth {
		return nil, gas, ErrDepth
	}
	if value.Sign() != 0 && !evm.canTransfer(caller, value.ToBig()) {
		return nil, gas, ErrInsufficientBalance
	}
	snapshot := evm.StateDB.Snapshot()

	if pc, isPrecompile := evm.precompiles[addr]; isPrecompile {
		ret, leftOver, err := evm.runPrecompiled(pc, input, gas)
		evm.finish(snapshot, err)
		return ret, leftOver, err
	}

	code := evm.StateDB.GetCode(addr)
	contract := NewContract(AccountRef(caller), AccountRef(caller), value, gas)
	contract.SetCallCode(&addr, evm.StateDB.GetCodeHash(addr), code)

	evm.depth++
	ret, err := evm.interpreter.Run(contract, input, false)
	evm.depth--

	evm.finish(snapshot, err)
	return ret, contract.Gas, err
}

// DelegateCall runs addr's code with the calling contract's storage,
// address, and value all left untouched (spec.md §4.5 "DELEGATECALL").
func (evm *EVM) DelegateCall(callerContract *Contract, addr common.Address, input []byte, gas uint64) ([]byte, uint64, error) {
	if evm.depth > maxCallDepth {
		return nil, gas, ErrDepth
	}
	snapshot := evm.StateDB.Snapshot()

	if pc, isPrecompile := evm.precompiles[addr]; isPrecompile {
		ret, leftOver, err := evm.runPrecompiled(pc, input, gas)
		evm.finish(snapshot, err)
		return ret, leftOver, err
	}

	code := evm.StateDB.GetCode(addr)
	contract := NewContract(AccountRef(callerContract.CallerAddress), AccountRef(callerContract.Address()), callerContract.Value(), gas)
	contract.SetCallCode(&addr, evm.StateDB.GetCodeHash(addr), code)

	evm.depth++
	ret, err := evm.interpreter.Run(contract, input, false)
	evm.depth--

	evm.finish(snapshot, err)
	return ret, contract.Gas, err
}

// StaticCall runs addr's code with every state-mutating opcode rejected
// (spec.md §4.5 "STATICCALL").
func (evm *EVM) StaticCall(caller common.Address, addr common.Address, input []byte, gas uint64) ([]byte, uint64, error) {
	if evm.depth > maxCallDepth {
		return nil, gas, ErrDepth
	}
	snapshot := evm.StateDB.Snapshot()

	if pc, isPrecompile := evm.precompiles[addr]; isPrecompile {
		ret, leftOver, err := evm.runPrecompiled(pc, input, gas)
		evm.finish(snapshot, err)
		return ret, leftOver, err
	}

	code := evm.StateDB.GetCode(addr)
	contract := NewContract(AccountRef(caller), AccountRef(addr), new(uint256.Int), gas)
	contract.SetCallCode(&addr, evm.StateDB.GetCodeHash(addr), code)

	evm.depth++
	ret, err := evm.interpreter.Run(contract, input, true)
	evm.depth--

	evm.finish(snapshot, err)
	return ret, contract.Gas, err
}

// Create deploys init-code's output as new code at a freshly derived
// address (spec.md §4.5 "CREATE").
func (evm *EVM) Create(caller common.Address, initCode []byte, gas uint64, value *uint256.Int) ([]byte, common.Address, uint64, error) {
	nonce := evm.StateDB.GetNonce(caller)
	contractAddr := createAddress(caller, nonce)
	return evm.create(caller, initCode, gas, value, contractAddr)
}

// Create2 deploys init-code's output at an address derived from a
// caller-chosen salt and the init code's hash, so the address can be
// known before deployment (spec.md §4.5 "CREATE2").
func (evm *EVM) Create2(caller common.Address, initCode []byte, gas uint64, value *uint256.Int, salt *uint256.Int) ([]byte, common.Address, uint64, error) {
	codeHash := crypto.Keccak256(initCode)
	contractAddr := createAddress2(caller, salt.Bytes32(), codeHash)
	return evm.create(caller, initCode, gas, value, contractAddr)
}

func (evm *EVM) create(caller common.Address, initCode []byte, gas uint64, value *uint256.Int, addr common.Address) ([]byte, common.Address, uint64, error) {
	if evm.depth > maxCallDepth {
		return nil, common.Address{}, gas, ErrDepth
	}
	valueBig := value.ToBig()
	if value.Sign() != 0 && !evm.canTransfer(caller, valueBig) {
		return nil, common.Address{}, gas, ErrInsufficientBalance
	}
	if evm.chainRules.IsEIP3860 && !evm.Config.NoMaxInitCodeSize && uint64(len(initCode)) > params.MaxInitCodeSize {
		return nil, common.Address{}, gas, ErrMaxInitCodeSizeExceeded
	}
	if evm.chainRules.IsEIP3540 && hasEOFMagic(initCode) {
		container, err := parseEOFHeader(initCode)
		if err != nil {
			return nil, common.Address{}, gas, err
		}
		if evm.chainRules.IsEIP3670 {
			for _, section := range container.codeSections {
				if err := validateEOFCode(section, evm.jumpTable); err != nil {
					return nil, common.Address{}, gas, err
				}
			}
		}
	}

	nonce := evm.StateDB.GetNonce(caller)
	if nonce+1 < nonce {
		return nil, common.Address{}, gas, ErrNonceUintOverflow
	}
	evm.StateDB.SetNonce(caller, nonce+1)

	if evm.StateDB.Exist(addr) && (evm.StateDB.GetNonce(addr) != 0 || len(evm.StateDB.GetCode(addr)) != 0) {
		return nil, common.Address{}, gas, ErrContractAddressCollision
	}

	snapshot := evm.StateDB.Snapshot()
	evm.StateDB.CreateAccount(addr)
	evm.StateDB.SetNonce(addr, 1)
	evm.transfer(caller, addr, valueBig)

	contract := NewContract(AccountRef(caller), AccountRef(addr), value, gas)
	contract.SetCallCode(&addr, crypto.Keccak256Hash(initCode), initCode)

	evm.depth++
	ret, err := evm.interpreter.Run(contract, nil, false)
	evm.depth--

	if err == nil {
		if evm.chainRules.IsEIP3541 && !evm.chainRules.IsEIP3540 && len(ret) >= 1 && ret[0] == 0xEF {
			err = ErrInvalidCode
		} else if evm.chainRules.IsEIP158 && uint64(len(ret)) > params.MaxCodeSize {
			err = ErrMaxCodeSizeExceeded
		} else {
			createDataGas := uint64(len(ret)) * params.CreateDataGas
			if !contract.UseGas(createDataGas) {
				err = ErrCodeStoreOutOfGas
			} else {
				evm.StateDB.SetCode(addr, ret)
			}
		}
	}

	if err != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
		if err != ErrExecutionReverted {
			contract.Gas = 0
		}
	} else {
		evm.StateDB.Finalise(snapshot)
	}
	return ret, addr, contract.Gas, err
}

func createAddress(caller common.Address, nonce uint64) common.Address {
	data, _ := rlp.EncodeToBytes([]interface{}{caller, nonce})
	return common.BytesToAddress(crypto.Keccak256(data)[12:])
}

func createAddress2(caller common.Address, salt [32]byte, codeHash []byte) common.Address {
	input := make([]byte, 0, 1+20+32+32)
	input = append(input, 0xff)
	input = append(input, caller.Bytes()...)
	input = append(input, salt[:]...)
	input = append(input, codeHash...)
	return common.BytesToAddress(crypto.Keccak256(input)[12:])
}
