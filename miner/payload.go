package miner

import (
	"crypto/sha256"
	"encoding/binary"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/evmforge/execution-core/core/types"
)

// PayloadID is a stable handle Build/Stop use to refer to one in-progress
// block. It never itself determines the block's content: it is a digest
// of the build's fixed parameters, computed once in Start.
type PayloadID [8]byte

// computePayloadID derives a PayloadID from the fields that make one
// build request distinct from another, the same fields the real
// Engine API's forkchoiceUpdated payload attributes fix before building
// starts.
func computePayloadID(parentHash common.Hash, timestamp uint64, random common.Hash, feeRecipient common.Address, withdrawalsRoot common.Hash) PayloadID {
	h := sha256.New()
	h.Write(parentHash[:])
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], timestamp)
	h.Write(ts[:])
	h.Write(random[:])
	h.Write(feeRecipient[:])
	h.Write(withdrawalsRoot[:])

	var id PayloadID
	copy(id[:], h.Sum(nil))
	return id
}

// Payload is one build's accumulated best-so-far result. Build may be
// called on it repeatedly; each call either improves it (more txs fit)
// or returns the previous result unchanged once the pool is drained or
// the deadline passes.
type Payload struct {
	id PayloadID

	mu        sync.Mutex
	cancelled bool

	block    *types.Block
	receipts types.Receipts
	sidecars []*types.BlobTxSidecar
}

func newPayload(id PayloadID) *Payload {
	return &Payload{id: id}
}

// cancel marks the payload so in-flight and future Build calls return
// immediately with the best-so-far result.
func (p *Payload) cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelled = true
}

func (p *Payload) isCancelled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancelled
}

func (p *Payload) setResult(block *types.Block, receipts types.Receipts, sidecars []*types.BlobTxSidecar) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.block = block
	p.receipts = receipts
	p.sidecars = sidecars
}

// Result is the externally visible snapshot of a Build call: the
// assembled block, its receipts, and the blob sidecars of any included
// blob transactions.
type Result struct {
	Block    *types.Block
	Receipts types.Receipts
	Sidecars []*types.BlobTxSidecar
}

func (p *Payload) result() *Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.block == nil {
		return nil
	}
	return &Result{Block: p.block, Receipts: p.receipts, Sidecars: p.sidecars}
}
