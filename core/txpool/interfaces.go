package txpool

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/evmforge/execution-core/core/state"
	"github.com/evmforge/execution-core/core/types"
	"github.com/evmforge/execution-core/params"
)

// BlockChain defines the minimal state/header accessors the pool needs to
// validate transactions against the canonical chain without depending on
// the full node stack.
type BlockChain interface {
	Config() *params.ChainConfig
	CurrentBlock() *types.Header
	StateAt(root common.Hash) (*state.StateDB, error)
	GetBlock(hash common.Hash, number uint64) *types.Block
}

// AddressReserver exclusively locks an address to one subpool so the same
// sender's nonce-space is never validated against two pools at once.
type AddressReserver func(addr common.Address, reserve bool) error

// LazyTransaction is a pool entry whose costly fields (full transaction,
// resolved metadata) can be fetched on demand instead of up front, so the
// assembler's dry-run ordering pass doesn't pay for transactions it never
// picks.
type LazyTransaction struct {
	Pool Pool

	Hash      common.Hash
	Time      time.Time
	GasFeeCap *big.Int
	GasTipCap *big.Int
	Gas       uint64
	BlobGas   uint64
}

// Resolve fetches the full transaction behind a lazy entry.
func (ltx *LazyTransaction) Resolve() *types.Transaction {
	return ltx.Pool.Get(ltx.Hash)
}

// PendingFilter narrows Pending's result set by fee floor and tx shape.
type PendingFilter struct {
	MinTip      *big.Int
	BaseFee     *big.Int
	BlobFee     *big.Int
	OnlyPlainTxs bool
	OnlyBlobTxs  bool
}

// TxStatus is the externally observable lifecycle state of a pooled
// transaction.
type TxStatus uint

const (
	TxStatusUnknown TxStatus = iota
	TxStatusQueued
	TxStatusPending
	TxStatusIncluded
)

// Pool is the subpool contract a block assembler and RPC layer drive; one
// implementation (pool.go's TxPool) currently backs it, grouped behind an
// interface the way a multi-subpool dispatcher would fan calls out.
type Pool interface {
	Filter(tx *types.Transaction) bool
	Init(gasTip uint64, head *types.Header, reserve AddressReserver) error
	Close() error
	Reset(oldHead, newHead *types.Header)
	SetGasTip(tip *big.Int)
	Has(hash common.Hash) bool
	Get(hash common.Hash) *types.Transaction
	Add(txs []*types.Transaction, local bool, sync bool) []error
	Remove(hash common.Hash)
	Pending(filter PendingFilter) map[common.Address][]*LazyTransaction
	Nonce(addr common.Address) uint64
	Stats() (int, int)
	Content() (map[common.Address][]*types.Transaction, map[common.Address][]*types.Transaction)
	ContentFrom(addr common.Address) ([]*types.Transaction, []*types.Transaction)
	Locals() []common.Address
	Status(hash common.Hash) TxStatus
}
