package core

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/evmforge/execution-core/core/state"
	"github.com/evmforge/execution-core/core/types"
	"github.com/evmforge/execution-core/core/vm"
	"github.com/evmforge/execution-core/params"
)

func newTestEVM(t *testing.T, activeHardfork string, baseFee *big.Int) (*vm.EVM, *state.StateDB) {
	t.Helper()
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
	})
	require.NoError(t, err)

	db := state.New()
	ctx := vm.BlockContext{
		GetHash:     func(uint64) common.Hash { return common.Hash{} },
		Coinbase:    common.HexToAddress("0xc0ffee"),
		BlockNumber: big.NewInt(1),
		Time:        1,
		Difficulty:  big.NewInt(0),
		GasLimit:    30_000_000,
		BaseFee:     baseFee,
	}
	return vm.NewEVM(ctx, vm.TxContext{GasPrice: big.NewInt(1)}, db, cfg, vm.Config{}), db
}

func TestApplyMessageTransfersValueAndChargesGas(t *testing.T) {
	evm, db := newTestEVM(t, params.London, big.NewInt(1))

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)
	db.AddBalance(from, big.NewInt(1_000_000_000_000))

	to := common.HexToAddress("0xbb")
	msg := &Message{
		To:        &to,
		From:      from,
		GasLimit:  21000,
		GasPrice:  big.NewInt(2),
		GasFeeCap: big.NewInt(2),
		GasTipCap: big.NewInt(1),
		Value:     big.NewInt(100),
	}

	gp := new(GasPool).AddGas(30_000_000)
	result, err := ApplyMessage(evm, msg, gp)
	require.NoError(t, err)
	require.False(t, result.Failed())
	require.Equal(t, uint64(21000), result.UsedGas)
	require.Equal(t, big.NewInt(100), db.GetBalance(to))
	require.Equal(t, uint64(1), db.GetNonce(from))
}

func TestApplyMessageRejectsInsufficientFunds(t *testing.T) {
	evm, db := newTestEVM(t, params.London, big.NewInt(1))

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)
	db.AddBalance(from, big.NewInt(100))

	to := common.HexToAddress("0xbb")
	msg := &Message{
		To:        &to,
		From:      from,
		GasLimit:  21000,
		GasPrice:  big.NewInt(2),
		GasFeeCap: big.NewInt(2),
		GasTipCap: big.NewInt(1),
		Value:     big.NewInt(0),
	}

	gp := new(GasPool).AddGas(30_000_000)
	_, err = ApplyMessage(evm, msg, gp)
	require.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestApplyMessageRejectsTipAboveFeeCap(t *testing.T) {
	evm, db := newTestEVM(t, params.London, big.NewInt(1))

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)
	db.AddBalance(from, big.NewInt(1_000_000_000_000))

	to := common.HexToAddress("0xbb")
	msg := &Message{
		To:        &to,
		From:      from,
		GasLimit:  21000,
		GasPrice:  big.NewInt(5),
		GasFeeCap: big.NewInt(2),
		GasTipCap: big.NewInt(5),
		Value:     big.NewInt(0),
	}

	gp := new(GasPool).AddGas(30_000_000)
	_, err = ApplyMessage(evm, msg, gp)
	require.ErrorIs(t, err, ErrTipAboveFeeCap)
}

func TestApplyMessageRejectsStaleNonce(t *testing.T) {
	evm, db := newTestEVM(t, params.London, big.NewInt(1))

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)
	db.AddBalance(from, big.NewInt(1_000_000_000_000))
	db.SetNonce(from, 3)

	to := common.HexToAddress("0xbb")
	msg := &Message{
		To:        &to,
		From:      from,
		Nonce:     1,
		GasLimit:  21000,
		GasPrice:  big.NewInt(2),
		GasFeeCap: big.NewInt(2),
		GasTipCap: big.NewInt(1),
		Value:     big.NewInt(0),
	}

	gp := new(GasPool).AddGas(30_000_000)
	_, err = ApplyMessage(evm, msg, gp)
	require.ErrorIs(t, err, ErrNonceTooLow)
}
