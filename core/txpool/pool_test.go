package txpool

import (
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/evmforge/execution-core/core/state"
	"github.com/evmforge/execution-core/core/types"
	"github.com/evmforge/execution-core/params"
)

// fakeChain is a minimal BlockChain good enough to drive TxPool's
// admission checks without a real block database.
type fakeChain struct {
	cfg   *params.ChainConfig
	head  *types.Header
	db    *state.StateDB
	block *types.Block
}

func (c *fakeChain) Config() *params.ChainConfig                      { return c.cfg }
func (c *fakeChain) CurrentBlock() *types.Header                      { return c.head }
func (c *fakeChain) StateAt(common.Hash) (*state.StateDB, error)      { return c.db, nil }
func (c *fakeChain) GetBlock(common.Hash, uint64) *types.Block        { return c.block }

func newFakeChain(t *testing.T) (*fakeChain, *ecdsa.PrivateKey, types.Signer) {
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
	db.AddBalance(from, big.NewInt(0).SetInt64(1_000_000_000_000))

	head := &types.Header{Number: big.NewInt(1), BaseFee: big.NewInt(10)}
	return &fakeChain{cfg: cfg, head: head, db: db}, key, types.LatestSigner(cfg.ChainID)
}

func signLegacy(t *testing.T, signer types.Signer, key *ecdsa.PrivateKey, nonce uint64, gasPrice int64) *types.Transaction {
	t.Helper()
	to := common.HexToAddress("0xbb")
	tx := types.NewLegacyTx(nonce, &to, big.NewInt(0), 21000, big.NewInt(gasPrice), nil)
	signed, err := types.SignTx(tx, signer, key)
	require.NoError(t, err)
	return signed
}

func newTestPool(t *testing.T) (*TxPool, *fakeChain, *ecdsa.PrivateKey, types.Signer) {
	t.Helper()
	chain, key, signer := newFakeChain(t)
	pool := NewPool(chain)
	require.NoError(t, pool.Init(0, chain.head, nil))
	return pool, chain, key, signer
}

func TestPoolAddAcceptsAffordableTx(t *testing.T) {
	pool, _, key, signer := newTestPool(t)
	tx := signLegacy(t, signer, key, 0, 100)

	errs := pool.Add([]*types.Transaction{tx}, true, false)
	require.Equal(t, []error{nil}, errs)
	require.True(t, pool.Has(tx.Hash()))
}

func TestPoolAddRejectsFeeBelowBaseFee(t *testing.T) {
	pool, _, key, signer := newTestPool(t)
	tx := signLegacy(t, signer, key, 0, 1) // below head.BaseFee=10

	errs := pool.Add([]*types.Transaction{tx}, true, false)
	require.ErrorIs(t, errs[0], ErrFeeBelowBase)
}

func TestPoolAddRejectsStaleNonce(t *testing.T) {
	pool, chain, key, signer := newTestPool(t)
	from := crypto.PubkeyToAddress(key.PublicKey)
	chain.db.SetNonce(from, 5)

	tx := signLegacy(t, signer, key, 2, 100)
	errs := pool.Add([]*types.Transaction{tx}, true, false)
	require.ErrorIs(t, errs[0], ErrNonceTooLow)
}

func TestPoolAddReplacementNeedsPriceBump(t *testing.T) {
	pool, _, key, signer := newTestPool(t)
	first := signLegacy(t, signer, key, 0, 100)
	require.Equal(t, []error{nil}, pool.Add([]*types.Transaction{first}, true, false))

	tooSmallBump := signLegacy(t, signer, key, 0, 105) // +5%, needs +10%
	errs := pool.Add([]*types.Transaction{tooSmallBump}, true, false)
	require.ErrorIs(t, errs[0], ErrReplaceUnderpriced)

	bigEnoughBump := signLegacy(t, signer, key, 0, 111) // +11%
	errs = pool.Add([]*types.Transaction{bigEnoughBump}, true, false)
	require.NoError(t, errs[0])
	require.False(t, pool.Has(first.Hash()), "replaced tx must be evicted")
	require.True(t, pool.Has(bigEnoughBump.Hash()))
}

func TestPoolPendingOrdersBySenderNonceAndStopsAtGap(t *testing.T) {
	pool, _, key, signer := newTestPool(t)
	from := crypto.PubkeyToAddress(key.PublicKey)

	tx0 := signLegacy(t, signer, key, 0, 100)
	tx2 := signLegacy(t, signer, key, 2, 100) // nonce 1 never arrives: a gap
	pool.Add([]*types.Transaction{tx2, tx0}, true, false)

	pending := pool.Pending(PendingFilter{})
	lazies := pending[from]
	require.Len(t, lazies, 1, "only the contiguous-from-current-nonce prefix is executable")
	require.Equal(t, tx0.Hash(), lazies[0].Hash)
}
