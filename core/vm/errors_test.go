package vm

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/evmforge/execution-core/params"
)

// TestCodestoreOOGPreservesSiblingRefunds exercises the Frontier
// CodestoreOOG case: a CREATE whose init code returns more bytes than its
// remaining gas can pay CreateDataGas for fails with ErrCodeStoreOutOfGas,
// reverting only that create's own snapshot. A refund accumulated earlier
// in the same transaction, outside that snapshot, survives.
func TestCodestoreOOGPreservesSiblingRefunds(t *testing.T) {
	evm, db := testEVM(params.Frontier)
	caller := common.HexToAddress("0xaa")
	db.CreateAccount(caller)
	db.AddRefund(15000)

	// PUSH1 32, PUSH1 0, RETURN: returns 32 zero bytes. CreateDataGas for
	// 32 bytes (200 gas/byte) is 6400, far more than the gas left after
	// running these three opcodes out of a 100-gas budget.
	initCode := []byte{0x60, 0x20, 0x60, 0x00, 0xf3}

	_, _, _, err := evm.Create(caller, initCode, 100, new(uint256.Int))
	require.ErrorIs(t, err, ErrCodeStoreOutOfGas)
	require.Equal(t, uint64(15000), db.GetRefund(), "a sibling refund outside the failing create's own snapshot must not be rolled back")
}
