package types

import "github.com/ethereum/go-ethereum/common"

// Log is one entry emitted by the LOG0-LOG4 opcodes during execution
// (SPEC_FULL.md §1 supplement: receipts need a log shape to attach to).
type Log struct {
	Address common.Address `json:"address"`
	Topics  []common.Hash  `json:"topics"`
	Data    []byte         `json:"data"`

	// derived fields, not part of the consensus encoding
	BlockNumber uint64      `json:"blockNumber" rlp:"-"`
	TxHash      common.Hash `json:"transactionHash" rlp:"-"`
	TxIndex     uint        `json:"transactionIndex" rlp:"-"`
	BlockHash   common.Hash `json:"blockHash" rlp:"-"`
	Index       uint        `json:"logIndex" rlp:"-"`
	Removed     bool        `json:"removed" rlp:"-"`
}

// rlpLog is the consensus-encoded subset of Log used inside receipts.
type rlpLog struct {
	Address common.Address
	Topics  []common.Hash
	Data    []byte
}
