// Package miner assembles pending blocks on demand: it drains core/txpool
// in nonce-ordered, fee-priced sequence, executes each candidate through
// core.ApplyMessage against a scratch copy of state, and hands back the
// best block it managed to build before a deadline or cancellation.
package miner

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"

	"github.com/evmforge/execution-core/core"
	"github.com/evmforge/execution-core/core/state"
	"github.com/evmforge/execution-core/core/txpool"
	"github.com/evmforge/execution-core/core/types"
	"github.com/evmforge/execution-core/core/vm"
	"github.com/evmforge/execution-core/params"
)

// BuildParams is the caller-supplied half of a payload's identity: the
// fields a consensus-layer forkchoiceUpdated call fixes before a build
// begins.
type BuildParams struct {
	Coinbase    common.Address
	Timestamp   uint64
	GasLimit    uint64 // 0 means inherit the parent's gas limit
	Random      common.Hash
	Withdrawals types.Withdrawals
}

type buildRequest struct {
	parent  *types.Header
	params  BuildParams
	payload *Payload
}

// Miner owns every in-flight payload build. One Miner serves many
// concurrent Start/Build/Stop calls; each payload's own state is
// independent of the others.
type Miner struct {
	chain  txpool.BlockChain
	pool   txpool.Pool
	signer types.Signer

	mu       sync.Mutex
	payloads map[PayloadID]*buildRequest
}

// New builds a Miner that assembles blocks from pool against chain.
func New(chain txpool.BlockChain, pool txpool.Pool, signer types.Signer) *Miner {
	return &Miner{
		chain:    chain,
		pool:     pool,
		signer:   signer,
		payloads: make(map[PayloadID]*buildRequest),
	}
}

// Start registers a new payload build on top of parent and returns its
// stable id. It does not itself run any transactions; call Build to
// produce (and repeatedly improve) a result.
func (m *Miner) Start(parent *types.Header, p BuildParams) (PayloadID, error) {
	if parent == nil {
		return PayloadID{}, fmt.Errorf("nil parent header")
	}
	gasLimit := p.GasLimit
	if gasLimit == 0 {
		gasLimit = parent.GasLimit
	}
	p.GasLimit = gasLimit

	var withdrawalsRoot common.Hash
	if p.Withdrawals != nil {
		withdrawalsRoot = types.DeriveSha(p.Withdrawals)
	} else {
		withdrawalsRoot = types.EmptyRootHash
	}

	id := computePayloadID(parent.Hash(), p.Timestamp, p.Random, p.Coinbase, withdrawalsRoot)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.payloads[id]; ok {
		// Start is idempotent: re-registering an in-flight id is a no-op.
		return id, nil
	}
	m.payloads[id] = &buildRequest{parent: parent, params: p, payload: newPayload(id)}
	return id, nil
}

// Stop cancels a payload build. It is idempotent: stopping an unknown or
// already-stopped id is not an error.
func (m *Miner) Stop(id PayloadID) error {
	m.mu.Lock()
	req, ok := m.payloads[id]
	m.mu.Unlock()
	if !ok {
		return nil
	}
	req.payload.cancel()
	return nil
}

// Build assembles id's block from the pool's current contents. Each call
// re-runs the full ordering pass against a fresh state copy, so later
// calls naturally pick up transactions the pool has gained since the
// last call; ctx's deadline bounds how long this call may spend executing
// transactions before returning the best block assembled so far.
func (m *Miner) Build(ctx context.Context, id PayloadID) (*Result, error) {
	m.mu.Lock()
	req, ok := m.payloads[id]
	m.mu.Unlock()
	if !ok {
		return nil, errUnknownPayload
	}
	if req.payload.isCancelled() {
		if r := req.payload.result(); r != nil {
			return r, nil
		}
		return nil, errBlockInterruptedByResolve
	}

	defer func(start time.Time) { buildDurationTimer.UpdateSince(start) }(time.Now())

	env, err := m.prepare(req)
	if err != nil {
		log.Error("failed to prepare block environment", "err", err)
		return nil, err
	}

	m.fillTransactions(ctx, env, req.payload)

	block, receipts, sidecars := env.finalize()
	log.Info("built payload", "number", block.Number(), "txs", len(env.txs), "gasUsed", block.GasUsed())
	if prev := req.payload.result(); prev != nil && len(block.Transactions()) < len(prev.Block.Transactions()) {
		// A build cut short by its deadline or by Stop keeps the fuller earlier result.
		return prev, nil
	}
	req.payload.setResult(block, receipts, sidecars)
	return req.payload.result(), nil
}

// environment is the scratch state one Build call executes transactions
// against: a header template, a gas pool sized to it, and the
// accumulating txs/receipts/sidecars that will become the block body.
type environment struct {
	signer           types.Signer
	state            *state.StateDB
	gasPool          *core.GasPool
	header           *types.Header
	blobGasRemaining uint64

	txs         types.Transactions
	receipts    types.Receipts
	sidecars    []*types.BlobTxSidecar
	withdrawals types.Withdrawals
}

func (m *Miner) prepare(req *buildRequest) (*environment, error) {
	parent := req.parent
	chainCfg := m.chain.Config()
	rules := chainCfg.Rules()

	header := &types.Header{
		ParentHash: parent.Hash(),
		Coinbase:   req.params.Coinbase,
		Number:     new(big.Int).Add(parent.Number, big.NewInt(1)),
		GasLimit:   req.params.GasLimit,
		Time:       req.params.Timestamp,
		MixDigest:  req.params.Random,
	}
	if rules.IsLondon {
		header.BaseFee = calcBaseFee(parent)
	}
	if rules.IsShanghai {
		header.WithdrawalsHash = new(common.Hash)
		*header.WithdrawalsHash = types.DeriveSha(req.params.Withdrawals)
	}
	if rules.IsCancun {
		var parentExcess, parentUsed uint64
		if parent.ExcessBlobGas != nil {
			parentExcess = *parent.ExcessBlobGas
		}
		if parent.BlobGasUsed != nil {
			parentUsed = *parent.BlobGasUsed
		}
		excess := calcExcessBlobGas(parentExcess, parentUsed)
		used := uint64(0)
		header.ExcessBlobGas = &excess
		header.BlobGasUsed = &used
	}

	db, err := m.chain.StateAt(parent.Root)
	if err != nil {
		return nil, fmt.Errorf("loading parent state: %w", err)
	}
	db = db.Copy()

	env := &environment{
		signer:      m.signer,
		state:       db,
		gasPool:     new(core.GasPool).AddGas(header.GasLimit),
		header:      header,
		withdrawals: req.params.Withdrawals,
	}
	if rules.IsCancun {
		env.blobGasRemaining = params.MaxBlobGasPerBlock
	}
	return env, nil
}

// fillTransactions runs spec.md §4.8's ordering algorithm: pop the
// highest-effective-tip sender head, execute it against env's state, and
// keep going until the pool empties, the block fills, or ctx ends.
func (m *Miner) fillTransactions(ctx context.Context, env *environment, payload *Payload) {
	pending := m.pool.Pending(txpool.PendingFilter{BaseFee: env.header.BaseFee})
	order := newTransactionsByPriceAndNonce(pending, env.header.BaseFee)

	blockCtx := vm.BlockContext{
		GetHash:     func(uint64) common.Hash { return common.Hash{} },
		Coinbase:    env.header.Coinbase,
		GasLimit:    env.header.GasLimit,
		BlockNumber: env.header.Number,
		Time:        env.header.Time,
		Difficulty:  big.NewInt(0),
		Random:      env.header.MixDigest,
		BaseFee:     env.header.BaseFee,
	}
	if env.header.ExcessBlobGas != nil {
		blockCtx.BlobBaseFee = calcBlobFee(*env.header.ExcessBlobGas)
	}

	chainCfg := m.chain.Config()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if payload.isCancelled() {
			return
		}

		best := order.Peek()
		if best == nil {
			return
		}

		tx := best.tx.Resolve()
		if tx == nil {
			// Vanished from the pool between Pending and now (e.g. evicted
			// by a concurrent Reset): drop this sender's head and retry.
			order.Shift()
			continue
		}

		if tx.Gas() > env.gasPool.Gas() {
			order.Shift()
			continue
		}
		if blobGas := tx.BlobGas(); blobGas > 0 && blobGas > env.blobGasRemaining {
			order.Shift()
			continue
		}

		msg, err := core.TransactionToMessage(tx, env.signer, env.header.BaseFee)
		if err != nil {
			order.Shift()
			continue
		}

		env.state.StartTransaction()
		evm := vm.NewEVM(blockCtx, vm.TxContext{Origin: msg.From, GasPrice: msg.GasPrice, BlobHashes: msg.BlobHashes}, env.state, chainCfg, vm.Config{})
		snapshot := env.state.Snapshot()

		result, err := core.ApplyMessage(evm, msg, env.gasPool)
		if err != nil {
			// Not admissible against this block's actual state (stale
			// nonce once a prior tx in this same build already advanced
			// it, insufficient funds, ...): this tx can never retroactively
			// become valid for this build, so drop it from the pool.
			env.state.RevertToSnapshot(snapshot)
			m.pool.Remove(tx.Hash())
			buildTxsDroppedCounter.Inc(1)
			log.Debug("dropping transaction from build", "hash", tx.Hash(), "err", err)
			order.Shift()
			continue
		}

		env.state.Finalise(snapshot)
		receipt := makeReceipt(tx, msg, env.header, result, env.state.Logs())
		env.txs = append(env.txs, tx)
		env.receipts = append(env.receipts, receipt)
		buildTxsIncludedCounter.Inc(1)
		if sidecar := tx.BlobTxSidecar(); sidecar != nil {
			env.sidecars = append(env.sidecars, sidecar)
		}
		env.header.GasUsed += result.UsedGas
		if blobGas := tx.BlobGas(); blobGas > 0 {
			env.blobGasRemaining -= blobGas
			*env.header.BlobGasUsed += blobGas
		}

		order.Shift()
	}
}

func makeReceipt(tx *types.Transaction, msg *core.Message, header *types.Header, result *core.ExecutionResult, logs []*types.Log) *types.Receipt {
	status := types.ReceiptStatusSuccessful
	if result.Failed() {
		status = types.ReceiptStatusFailed
	}
	r := &types.Receipt{
		Type:              tx.Type(),
		Status:            status,
		CumulativeGasUsed: header.GasUsed + result.UsedGas,
		Logs:              logs,
		TxHash:            tx.Hash(),
		GasUsed:           result.UsedGas,
	}
	if msg.To == nil {
		r.ContractAddress = crypto.CreateAddress(msg.From, msg.Nonce)
	}
	r.Bloom = types.CreateBloom(r.Logs)
	return r
}

// finalize turns the accumulated txs/receipts into a sealed block,
// deriving the trie roots the same way core/types.NewBlock always does.
func (env *environment) finalize() (*types.Block, types.Receipts, []*types.BlobTxSidecar) {
	block := types.NewBlock(env.header, env.txs, env.receipts, env.withdrawals)
	return block, env.receipts, env.sidecars
}
