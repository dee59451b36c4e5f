package miner

import (
	"container/heap"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/evmforge/execution-core/core/txpool"
)

// txWithMinerFee wraps a pool entry with its effective tip at the
// pending block's base fee, the key the assembler packs blocks by.
type txWithMinerFee struct {
	tx   *txpool.LazyTransaction
	from common.Address
	fee  *big.Int
}

func newTxWithMinerFee(tx *txpool.LazyTransaction, from common.Address, baseFee *big.Int) *txWithMinerFee {
	tip := new(big.Int).Set(tx.GasTipCap)
	if baseFee != nil {
		headroom := new(big.Int).Sub(tx.GasFeeCap, baseFee)
		if headroom.Cmp(tip) < 0 {
			tip = headroom
		}
	}
	return &txWithMinerFee{tx: tx, from: from, fee: tip}
}

// txFeeHeap is a max-heap over txWithMinerFee ordered by descending
// effective tip, ties broken by earliest pool-arrival time.
type txFeeHeap []*txWithMinerFee

func (h txFeeHeap) Len() int { return len(h) }
func (h txFeeHeap) Less(i, j int) bool {
	cmp := h[i].fee.Cmp(h[j].fee)
	if cmp == 0 {
		return h[i].tx.Time.Before(h[j].tx.Time)
	}
	return cmp > 0
}
func (h txFeeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *txFeeHeap) Push(x interface{}) { *h = append(*h, x.(*txWithMinerFee)) }
func (h *txFeeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// transactionsByPriceAndNonce iterates pending transactions sender by
// sender in nonce order, but yields across senders in descending
// effective-tip order (spec.md §4.8 "Ordering algorithm" step 1): one
// sender's next-by-nonce transaction only enters the heap once its
// predecessor has been popped.
type transactionsByPriceAndNonce struct {
	byAddr  map[common.Address][]*txpool.LazyTransaction
	heads   txFeeHeap
	baseFee *big.Int
}

func newTransactionsByPriceAndNonce(pending map[common.Address][]*txpool.LazyTransaction, baseFee *big.Int) *transactionsByPriceAndNonce {
	t := &transactionsByPriceAndNonce{
		byAddr:  make(map[common.Address][]*txpool.LazyTransaction, len(pending)),
		heads:   make(txFeeHeap, 0, len(pending)),
		baseFee: baseFee,
	}
	for from, txs := range pending {
		if len(txs) == 0 {
			continue
		}
		t.byAddr[from] = txs[1:]
		t.heads = append(t.heads, newTxWithMinerFee(txs[0], from, baseFee))
	}
	heap.Init(&t.heads)
	return t
}

// Peek returns the highest-effective-tip transaction without removing it.
func (t *transactionsByPriceAndNonce) Peek() *txWithMinerFee {
	if len(t.heads) == 0 {
		return nil
	}
	return t.heads[0]
}

// Shift advances the peeked sender's queue, pushing their next
// transaction back into the heap if one remains.
func (t *transactionsByPriceAndNonce) Shift() {
	if len(t.heads) == 0 {
		return
	}
	from := t.heads[0].from
	if rest := t.byAddr[from]; len(rest) > 0 {
		t.heads[0] = newTxWithMinerFee(rest[0], from, t.baseFee)
		t.byAddr[from] = rest[1:]
		heap.Fix(&t.heads, 0)
		return
	}
	heap.Pop(&t.heads)
}

// Pop drops the peeked sender entirely, discarding their remaining queued
// transactions. The assembler's fill loop uses Shift, not Pop, for a
// transaction that does not fit.
func (t *transactionsByPriceAndNonce) Pop() {
	if len(t.heads) == 0 {
		return
	}
	from := t.heads[0].from
	delete(t.byAddr, from)
	heap.Pop(&t.heads)
}
