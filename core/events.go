// Package core ties the EVM (core/vm), the transaction pool (core/txpool)
// and the payload assembler (miner) together around one StateDB/ChainConfig.
package core

import "github.com/evmforge/execution-core/core/types"

// NewTxsEvent is posted when a batch of transactions enters the pool.
type NewTxsEvent struct{ Txs []*types.Transaction }

// RemovedLogsEvent is posted when a reorg unwinds previously-applied logs.
type RemovedLogsEvent struct{ Logs []*types.Log }

// ChainHeadEvent is posted when the canonical head changes.
type ChainHeadEvent struct{ Header *types.Header }
