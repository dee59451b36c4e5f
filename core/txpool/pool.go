// Package txpool queues signed transactions and exposes a nonce-ordered,
// fee-filtered view of them for block assembly.
package txpool

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"

	"github.com/evmforge/execution-core/core"
	"github.com/evmforge/execution-core/core/state"
	"github.com/evmforge/execution-core/core/types"
)

// priceBumpPercent is the minimum percentage a replacement transaction's
// fee caps must exceed the tx it replaces by, mirroring the classic
// legacypool default.
const priceBumpPercent = 10

// maxPoolSlots caps the number of transactions the pool holds at once; a
// full pool rejects further remote admissions, replacements included.
// Local transactions are not subject to the cap.
const maxPoolSlots = 16384

// TxPool is the production Pool implementation: the map/lock/event-feed
// shape of a single-type dummy pool generalized into a real admission
// pipeline that checks sender balance, nonce ordering, fee-vs-basefee,
// replace-by-fee bump percentage, and per-hardfork transaction-type gating.
type TxPool struct {
	lock sync.RWMutex

	reserve AddressReserver

	txs          map[common.Hash]*types.Transaction
	txsByAddress map[common.Address]map[uint64]*types.Transaction // sender -> nonce -> tx

	chain  BlockChain
	signer types.Signer

	head     *types.Header
	state    *state.StateDB
	gasTip   *big.Int

	discoverFeed event.Feed
	insertFeed   event.Feed
}

var _ Pool = (*TxPool)(nil)

// NewPool constructs an empty pool bound to chain; Init must be called
// before Add/Pending are used.
func NewPool(chain BlockChain) *TxPool {
	return &TxPool{
		chain:        chain,
		signer:       types.LatestSigner(chain.Config().ChainID),
		txs:          make(map[common.Hash]*types.Transaction),
		txsByAddress: make(map[common.Address]map[uint64]*types.Transaction),
		gasTip:       new(big.Int),
	}
}

// Filter accepts every transaction type this pool understands; a
// multi-pool dispatcher would route by type instead, but one pool covers
// the whole spec.md transaction surface here.
func (pool *TxPool) Filter(tx *types.Transaction) bool {
	switch tx.Type() {
	case types.LegacyTxType, types.AccessListTxType, types.DynamicFeeTxType, types.BlobTxType:
		return true
	default:
		return false
	}
}

func (pool *TxPool) Init(gasTip uint64, head *types.Header, reserve AddressReserver) error {
	st, err := pool.chain.StateAt(head.Root)
	if err != nil {
		return err
	}
	pool.lock.Lock()
	defer pool.lock.Unlock()
	pool.head, pool.state = head, st
	pool.reserve = reserve
	pool.gasTip = new(big.Int).SetUint64(gasTip)
	return nil
}

func (pool *TxPool) Close() error { return nil }

// Reset re-points the pool at newHead and drops any pooled transaction the
// new canonical chain already included.
func (pool *TxPool) Reset(oldHead, newHead *types.Header) {
	st, err := pool.chain.StateAt(newHead.Root)
	if err != nil {
		log.Error("failed to reset txpool state", "err", err)
		return
	}

	pool.lock.Lock()
	defer pool.lock.Unlock()
	pool.head, pool.state = newHead, st
	log.Debug("txpool reset to new head", "number", newHead.Number, "hash", newHead.Hash())

	block := pool.chain.GetBlock(newHead.Hash(), newHead.Number.Uint64())
	if block == nil {
		return
	}
	for _, tx := range block.Transactions() {
		from, err := types.Sender(pool.signer, tx)
		if err != nil {
			continue
		}
		pool.removeLocked(from, tx)

		// everything below the included nonce is now stale too
		if bySender, ok := pool.txsByAddress[from]; ok {
			for nonce, stale := range bySender {
				if nonce < tx.Nonce() {
					pool.removeLocked(from, stale)
				}
			}
		}
	}
}

func (pool *TxPool) removeLocked(from common.Address, tx *types.Transaction) {
	delete(pool.txs, tx.Hash())
	if bySender, ok := pool.txsByAddress[from]; ok {
		delete(bySender, tx.Nonce())
		if len(bySender) == 0 {
			delete(pool.txsByAddress, from)
		}
	}
}

// Remove drops a pooled transaction outright, used by the assembler when
// a transaction it popped off Pending fails execution (OOG, invalid
// opcode, stale nonce against the state it actually ran against) and so
// can never become valid by simply waiting for a later block.
func (pool *TxPool) Remove(hash common.Hash) {
	pool.lock.Lock()
	defer pool.lock.Unlock()
	tx, ok := pool.txs[hash]
	if !ok {
		return
	}
	from, err := types.Sender(pool.signer, tx)
	if err != nil {
		return
	}
	pool.removeLocked(from, tx)
}

func (pool *TxPool) SetGasTip(tip *big.Int) {
	pool.lock.Lock()
	defer pool.lock.Unlock()
	pool.gasTip = new(big.Int).Set(tip)
}

func (pool *TxPool) Has(hash common.Hash) bool {
	pool.lock.RLock()
	defer pool.lock.RUnlock()
	_, ok := pool.txs[hash]
	return ok
}

func (pool *TxPool) Get(hash common.Hash) *types.Transaction {
	pool.lock.RLock()
	defer pool.lock.RUnlock()
	return pool.txs[hash]
}

// validate runs the full admission contract a pooled transaction must
// satisfy: it must be a hardfork-supported type, correctly signed, affordable
// against the sender's current balance, not nonce-stale, not underpriced
// relative to the head base fee, and — if it replaces an existing pooled
// tx from the same sender/nonce — must out-bid it by priceBumpPercent.
func (pool *TxPool) validate(tx *types.Transaction) (common.Address, error) {
	rules := pool.chain.Config().Rules()
	switch tx.Type() {
	case types.DynamicFeeTxType:
		if !rules.IsLondon {
			return common.Address{}, fmt.Errorf("%w: type %d needs London", ErrInvalidSender, tx.Type())
		}
	case types.AccessListTxType:
		if !rules.IsBerlin {
			return common.Address{}, fmt.Errorf("%w: type %d needs Berlin", ErrInvalidSender, tx.Type())
		}
	case types.BlobTxType:
		if !rules.IsCancun {
			return common.Address{}, fmt.Errorf("%w: blob tx needs Cancun", ErrInvalidSender)
		}
		if tx.BlobTxSidecar() == nil {
			return common.Address{}, ErrBlobTxMissingSidecar
		}
	}

	from, err := types.Sender(pool.signer, tx)
	if err != nil {
		return common.Address{}, err
	}

	if tx.GasTipCap().Cmp(tx.GasFeeCap()) > 0 {
		return from, ErrTipAboveFeeCap
	}
	if pool.head.BaseFee != nil && tx.GasFeeCap().Cmp(pool.head.BaseFee) < 0 {
		return from, ErrFeeBelowBase
	}
	if tx.GasTipCap().Cmp(pool.gasTip) < 0 {
		return from, ErrUnderpriced
	}

	if tx.Nonce() < pool.state.GetNonce(from) {
		return from, ErrNonceTooLow
	}

	cost := new(big.Int).Mul(tx.GasFeeCap(), new(big.Int).SetUint64(tx.Gas()))
	cost.Add(cost, tx.Value())
	if pool.state.GetBalance(from).Cmp(cost) < 0 {
		return from, ErrInsufficientFunds
	}

	if bySender, ok := pool.txsByAddress[from]; ok {
		if old, exists := bySender[tx.Nonce()]; exists {
			if !outbidsByBumpPercent(old, tx) {
				return from, ErrReplaceUnderpriced
			}
		}
	}

	return from, nil
}

// outbidsByBumpPercent reports whether replacement's fee caps both exceed
// original's by at least priceBumpPercent.
func outbidsByBumpPercent(original, replacement *types.Transaction) bool {
	outbids := func(oldFee, newFee *big.Int) bool {
		return newFee.Cmp(bumpedBy(oldFee, priceBumpPercent)) >= 0
	}
	return outbids(original.GasFeeCap(), replacement.GasFeeCap()) &&
		outbids(original.GasTipCap(), replacement.GasTipCap())
}

// bumpedBy returns v increased by bumpPercent percent, rounded down.
func bumpedBy(v *big.Int, bumpPercent int64) *big.Int {
	bumped := new(big.Int).Mul(v, big.NewInt(100+bumpPercent))
	return bumped.Div(bumped, big.NewInt(100))
}

// Add admits txs into the pool, enforcing the validate contract per tx.
func (pool *TxPool) Add(txs []*types.Transaction, local bool, sync bool) []error {
	if len(txs) == 0 {
		return nil
	}

	pool.lock.Lock()
	defer pool.lock.Unlock()

	errs := make([]error, len(txs))
	adds := make(types.Transactions, 0, len(txs))

	for i, tx := range txs {
		if _, known := pool.txs[tx.Hash()]; known {
			errs[i] = ErrAlreadyKnown
			knownTxMeter.Inc(1)
			continue
		}
		if !local && len(pool.txs) >= maxPoolSlots {
			errs[i] = ErrPoolFull
			poolFullTxMeter.Inc(1)
			continue
		}

		from, err := pool.validate(tx)
		if err != nil {
			errs[i] = err
			if err == ErrUnderpriced || err == ErrReplaceUnderpriced {
				underpricedTxMeter.Inc(1)
			} else {
				invalidTxMeter.Inc(1)
			}
			continue
		}
		validTxMeter.Inc(1)

		if bySender, ok := pool.txsByAddress[from]; ok {
			if old, exists := bySender[tx.Nonce()]; exists {
				delete(pool.txs, old.Hash())
			}
		} else {
			pool.txsByAddress[from] = make(map[uint64]*types.Transaction)
		}

		pool.txs[tx.Hash()] = tx
		pool.txsByAddress[from][tx.Nonce()] = tx
		adds = append(adds, tx)
		log.Trace("pooled transaction", "hash", tx.Hash(), "from", from, "nonce", tx.Nonce())
	}

	if len(adds) > 0 {
		pool.insertFeed.Send(core.NewTxsEvent{Txs: adds})
		pool.discoverFeed.Send(core.NewTxsEvent{Txs: adds})
	}
	return errs
}

// Pending returns, per sender, the pool's transactions starting at that
// sender's current chain nonce with no gaps, nonce-ordered and filtered by
// filter's fee floor and tx-shape constraints.
func (pool *TxPool) Pending(filter PendingFilter) map[common.Address][]*LazyTransaction {
	pool.lock.RLock()
	defer pool.lock.RUnlock()
	defer func(start time.Time) { pendingFetchTimer.UpdateSince(start) }(time.Now())

	execStart := time.Now()
	result := make(map[common.Address][]*LazyTransaction, len(pool.txsByAddress))

	for addr, bySender := range pool.txsByAddress {
		flat := make(types.Transactions, 0, len(bySender))
		for _, tx := range bySender {
			flat = append(flat, tx)
		}
		sorted := sortByNonce(flat)

		expectedNonce := pool.state.GetNonce(addr)
		lazies := make([]*LazyTransaction, 0, len(sorted))
		for _, tx := range sorted {
			if tx.Nonce() != expectedNonce {
				break // a gap stops executability right here
			}
			expectedNonce++

			if filter.OnlyBlobTxs && tx.Type() != types.BlobTxType {
				continue
			}
			if filter.OnlyPlainTxs && tx.Type() == types.BlobTxType {
				continue
			}
			if filter.MinTip != nil && tx.GasTipCap().Cmp(filter.MinTip) < 0 {
				continue
			}
			if filter.BaseFee != nil && tx.GasFeeCap().Cmp(filter.BaseFee) < 0 {
				continue
			}

			lazies = append(lazies, &LazyTransaction{
				Pool:      pool,
				Hash:      tx.Hash(),
				Time:      execStart,
				GasFeeCap: tx.GasFeeCap(),
				GasTipCap: tx.GasTipCap(),
				Gas:       tx.Gas(),
				BlobGas:   tx.BlobGas(),
			})
		}
		if len(lazies) > 0 {
			result[addr] = lazies
		}
	}
	return result
}

func (pool *TxPool) SubscribeTransactions(ch chan<- core.NewTxsEvent, reorgs bool) event.Subscription {
	if reorgs {
		return pool.insertFeed.Subscribe(ch)
	}
	return pool.discoverFeed.Subscribe(ch)
}

func (pool *TxPool) Nonce(addr common.Address) uint64 {
	pool.lock.RLock()
	defer pool.lock.RUnlock()

	highest := pool.state.GetNonce(addr)
	for nonce := range pool.txsByAddress[addr] {
		if nonce+1 > highest {
			highest = nonce + 1
		}
	}
	return highest
}

func (pool *TxPool) Stats() (int, int) {
	pool.lock.RLock()
	defer pool.lock.RUnlock()

	pending, queued := 0, 0
	for addr, bySender := range pool.txsByAddress {
		expected := pool.state.GetNonce(addr)
		for nonce := range bySender {
			if nonce == expected {
				pending++
				expected++
			} else {
				queued++
			}
		}
	}
	pendingGauge.Update(int64(pending))
	queuedGauge.Update(int64(queued))
	return pending, queued
}

func (pool *TxPool) Content() (map[common.Address][]*types.Transaction, map[common.Address][]*types.Transaction) {
	pool.lock.RLock()
	defer pool.lock.RUnlock()

	pending := make(map[common.Address][]*types.Transaction)
	for addr, bySender := range pool.txsByAddress {
		flat := make(types.Transactions, 0, len(bySender))
		for _, tx := range bySender {
			flat = append(flat, tx)
		}
		pending[addr] = sortByNonce(flat)
	}
	return pending, make(map[common.Address][]*types.Transaction)
}

func (pool *TxPool) ContentFrom(addr common.Address) ([]*types.Transaction, []*types.Transaction) {
	pool.lock.RLock()
	defer pool.lock.RUnlock()

	bySender := pool.txsByAddress[addr]
	flat := make(types.Transactions, 0, len(bySender))
	for _, tx := range bySender {
		flat = append(flat, tx)
	}
	return sortByNonce(flat), []*types.Transaction{}
}

func (pool *TxPool) Locals() []common.Address { return []common.Address{} }

func (pool *TxPool) Status(hash common.Hash) TxStatus {
	if pool.Has(hash) {
		return TxStatusPending
	}
	return TxStatusUnknown
}
