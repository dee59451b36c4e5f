package vm

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/evmforge/execution-core/core/state"
	"github.com/evmforge/execution-core/params"
)

func testEVM(activeHardfork string) (*EVM, *state.StateDB) {
	return testEVMWithConfig(activeHardfork, Config{})
}

func testEVMWithConfig(activeHardfork string, vmConfig Config) (*EVM, *state.StateDB) {
	db := state.New()
	zero := uint64(0)
	cfg, err := params.NewChainConfig(big.NewInt(1), 1, activeHardfork, []params.Hardfork{
		{Name: params.Frontier, Block: &zero},
		{Name: params.Homestead, Block: &zero},
		{Name: params.TangerineWhistle, Block: &zero},
		{Name: params.SpuriousDragon, Block: &zero},
		{Name: params.Byzantium, Block: &zero},
		{Name: params.Constantinople, Block: &zero},
		{Name: params.Petersburg, Block: &zero},
		{Name: params.Istanbul, Block: &zero},
		{Name: params.Berlin, Block: &zero},
		{Name: params.London, Block: &zero},
		{Name: params.Shanghai, Block: &zero},
	})
	if err != nil {
		panic(err)
	}
	ctx := BlockContext{
		GetHash:     func(uint64) common.Hash { return common.Hash{} },
		BlockNumber: big.NewInt(1),
		Time:        1,
		Difficulty:  big.NewInt(0),
		GasLimit:    30_000_000,
		BaseFee:     big.NewInt(1),
		BlobBaseFee: big.NewInt(1),
	}
	evm := NewEVM(ctx, TxContext{GasPrice: big.NewInt(1)}, db, cfg, vmConfig)
	return evm, db
}

func TestToWordSize(t *testing.T) {
	require.Equal(t, uint64(0), toWordSize(0))
	require.Equal(t, uint64(1), toWordSize(1))
	require.Equal(t, uint64(1), toWordSize(32))
	require.Equal(t, uint64(2), toWordSize(33))
}

func TestGasSStoreFrontierSetFromZero(t *testing.T) {
	evm, db := testEVM(params.Frontier)
	addr := common.HexToAddress("0xaa")
	db.CreateAccount(addr)

	stack := newStack()
	defer returnStack(stack)
	key := uint256.NewInt(1)
	val := uint256.NewInt(42)
	stack.push(val)
	stack.push(key)

	contract := NewContract(AccountRef(addr), AccountRef(addr), new(uint256.Int), 100000)
	gas, err := gasSStoreFrontier(evm, contract, stack, nil, 0)
	require.NoError(t, err)
	require.Equal(t, params.SstoreSetGas, gas)
}

func TestGasSStoreEIP2929ChargesColdThenWarm(t *testing.T) {
	evm, db := testEVM(params.Berlin)
	addr := common.HexToAddress("0xbb")
	db.CreateAccount(addr)

	newFrame := func() *Stack {
		s := newStack()
		s.push(uint256.NewInt(7))
		s.push(uint256.NewInt(1))
		return s
	}
	contract := NewContract(AccountRef(addr), AccountRef(addr), new(uint256.Int), 100000)

	s1 := newFrame()
	gas1, err := gasSStoreEIP2929(evm, contract, s1, nil, 0)
	require.NoError(t, err)
	returnStack(s1)

	s2 := newFrame()
	gas2, err := gasSStoreEIP2929(evm, contract, s2, nil, 0)
	require.NoError(t, err)
	returnStack(s2)

	require.Greater(t, gas1, gas2, "first (cold) SSTORE to a slot must cost more than a later (warm) one")
}

func TestInitCodeGasChargedEvenWhenCapDisabled(t *testing.T) {
	evm, _ := testEVMWithConfig(params.Shanghai, Config{NoMaxInitCodeSize: true})
	oversized := uint64(params.MaxInitCodeSize + 64)

	stack := newStack()
	defer returnStack(stack)
	stack.push(uint256.NewInt(oversized)) // size
	stack.push(uint256.NewInt(0))         // offset
	stack.push(uint256.NewInt(0))         // value

	gas, err := gasCreate(evm, nil, stack, nil, 0)
	require.NoError(t, err, "NoMaxInitCodeSize must bypass the hard-cap failure")
	require.Equal(t, toWordSize(oversized)*params.InitCodeWordGas, gas,
		"InitcodeWordGas is still charged even when the size cap itself is disabled")
}

func TestGasExpFrontierScalesWithExponentSize(t *testing.T) {
	evm, _ := testEVM(params.Frontier)
	stack := newStack()
	defer returnStack(stack)
	stack.push(uint256.NewInt(2))
	big256 := new(uint256.Int).Lsh(uint256.NewInt(1), 200)
	stack.push(big256)

	gas, err := gasExpFrontier(evm, nil, stack, nil, 0)
	require.NoError(t, err)
	require.Greater(t, gas, params.ExpGas)
}
