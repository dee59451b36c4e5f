package txpool

import (
	"container/heap"

	"github.com/evmforge/execution-core/core/types"
)

// nonceHeap orders a single sender's pooled transactions by ascending
// nonce, the order Pending must hand them to the assembler in (a sender's
// transactions are only executable back-to-back starting at their current
// nonce).
type nonceHeap types.Transactions

func (h nonceHeap) Len() int            { return len(h) }
func (h nonceHeap) Less(i, j int) bool  { return h[i].Nonce() < h[j].Nonce() }
func (h nonceHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nonceHeap) Push(x interface{}) { *h = append(*h, x.(*types.Transaction)) }
func (h *nonceHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// sortByNonce returns txs ordered by ascending nonce, leaving the input
// slice untouched.
func sortByNonce(txs types.Transactions) types.Transactions {
	h := make(nonceHeap, len(txs))
	copy(h, txs)
	heap.Init(&h)

	sorted := make(types.Transactions, 0, len(txs))
	for h.Len() > 0 {
		sorted = append(sorted, heap.Pop(&h).(*types.Transaction))
	}
	return sorted
}
