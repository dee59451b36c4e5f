package miner

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/evmforge/execution-core/core/state"
	"github.com/evmforge/execution-core/core/txpool"
	"github.com/evmforge/execution-core/core/types"
	"github.com/evmforge/execution-core/params"
)

type fakeChain struct {
	cfg  *params.ChainConfig
	head *types.Header
	db   *state.StateDB
}

func (c *fakeChain) Config() *params.ChainConfig                 { return c.cfg }
func (c *fakeChain) CurrentBlock() *types.Header                 { return c.head }
func (c *fakeChain) StateAt(common.Hash) (*state.StateDB, error) { return c.db, nil }
func (c *fakeChain) GetBlock(common.Hash, uint64) *types.Block   { return nil }

func newMinerTestSetup(t *testing.T) (*Miner, *txpool.TxPool, *fakeChain, types.Signer, *common.Address) {
	t.Helper()
	zero := uint64(0)
	cfg, err := params.NewChainConfig(big.NewInt(1), 1, params.London, []params.Hardfork{
		{Name: params.Frontier, Block: &zero},
		{Name: params.Berlin, Block: &zero},
		{Name: params.London, Block: &zero},
	})
	require.NoError(t, err)

	db := state.New()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)
	db.AddBalance(from, big.NewInt(0).SetInt64(1_000_000_000_000_000))

	head := &types.Header{Number: big.NewInt(1), GasLimit: 30_000_000, BaseFee: big.NewInt(params.InitialBaseFee)}
	chain := &fakeChain{cfg: cfg, head: head, db: db}

	signer := types.LatestSigner(cfg.ChainID)
	pool := txpool.NewPool(chain)
	require.NoError(t, pool.Init(0, head, nil))

	to := common.HexToAddress("0xcc")
	for nonce := uint64(0); nonce < 2; nonce++ {
		tx := types.NewLegacyTx(nonce, &to, big.NewInt(0), 21000, big.NewInt(params.InitialBaseFee*2), nil)
		signed, err := types.SignTx(tx, signer, key)
		require.NoError(t, err)
		errs := pool.Add([]*types.Transaction{signed}, true, false)
		require.Equal(t, []error{nil}, errs)
	}

	m := New(chain, pool, signer)
	return m, pool, chain, signer, &from
}

func TestMinerBuildAssemblesPendingTransactions(t *testing.T) {
	m, _, chain, _, from := newMinerTestSetup(t)

	id, err := m.Start(chain.head, BuildParams{
		Coinbase:  common.HexToAddress("0xaa"),
		Timestamp: chain.head.Time + 12,
		GasLimit:  chain.head.GasLimit,
	})
	require.NoError(t, err)

	result, err := m.Build(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, result.Block.Transactions(), 2, "both pooled nonce-ordered txs should be included")
	require.Len(t, result.Receipts, 2)
	for _, r := range result.Receipts {
		require.Equal(t, types.ReceiptStatusSuccessful, r.Status)
	}
	require.Equal(t, uint64(2*21000), result.Block.GasUsed())
	// Build executes against a copy of the parent state, so the chain's own
	// state is left untouched.
	require.Equal(t, uint64(0), chain.db.GetNonce(*from))
}

func TestMinerBuildUnknownPayload(t *testing.T) {
	m, _, _, _, _ := newMinerTestSetup(t)
	_, err := m.Build(context.Background(), PayloadID{})
	require.ErrorIs(t, err, errUnknownPayload)
}

func TestMinerStopReturnsBestSoFarOnNextBuild(t *testing.T) {
	m, _, chain, _, _ := newMinerTestSetup(t)

	id, err := m.Start(chain.head, BuildParams{Coinbase: common.HexToAddress("0xaa"), Timestamp: chain.head.Time + 12, GasLimit: chain.head.GasLimit})
	require.NoError(t, err)

	_, err = m.Build(context.Background(), id)
	require.NoError(t, err)

	require.NoError(t, m.Stop(id))
	result, err := m.Build(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, result, "a cancelled payload with a prior result returns it instead of erroring")
}
