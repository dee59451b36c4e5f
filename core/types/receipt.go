package types

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// Receipt status codes (post-Byzantium; pre-Byzantium receipts carry a
// PostState root instead and Status is left zero).
const (
	ReceiptStatusFailed     = uint64(0)
	ReceiptStatusSuccessful = uint64(1)
)

// Receipt is the per-transaction execution record SPEC_FULL.md §1 adds:
// the EVM core's Call/Create results plus the logs and gas accounting a
// block needs to expose to clients (spec.md's Non-goals exclude consensus
// serialization of blocks, but a receipt shape is load-bearing for the
// pending-block assembler's gas bookkeeping).
type Receipt struct {
	Type              uint8
	PostState         []byte
	Status            uint64
	CumulativeGasUsed uint64
	Bloom             Bloom
	Logs              []*Log

	TxHash          common.Hash
	ContractAddress common.Address
	GasUsed         uint64

	EffectiveGasPrice *big.Int
	BlobGasUsed       uint64
	BlobGasPrice      *big.Int

	BlockHash   common.Hash
	BlockNumber *big.Int
	TransactionIndex uint
}

// rlpReceipt is the consensus-encoded subset, shared by every tx type.
type rlpReceipt struct {
	PostStateOrStatus []byte
	CumulativeGasUsed uint64
	Bloom             Bloom
	Logs              []*rlpLog
}

func (r *Receipt) statusEncoding() []byte {
	if len(r.PostState) != 0 {
		return r.PostState
	}
	if r.Status == ReceiptStatusFailed {
		return nil
	}
	return []byte{1}
}

func (r *Receipt) toRLP() *rlpReceipt {
	logs := make([]*rlpLog, len(r.Logs))
	for i, l := range r.Logs {
		logs[i] = &rlpLog{Address: l.Address, Topics: l.Topics, Data: l.Data}
	}
	return &rlpReceipt{
		PostStateOrStatus: r.statusEncoding(),
		CumulativeGasUsed: r.CumulativeGasUsed,
		Bloom:             r.Bloom,
		Logs:              logs,
	}
}

// MarshalBinary implements the same type||rlp(body) envelope as typed
// transactions (spec.md §6 consistency between tx and receipt framing).
func (r *Receipt) MarshalBinary() ([]byte, error) {
	if r.Type == LegacyTxType {
		return rlp.EncodeToBytes(r.toRLP())
	}
	buf := new(bytes.Buffer)
	buf.WriteByte(r.Type)
	if err := rlp.Encode(buf, r.toRLP()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary parses a receipt in either legacy or typed form.
func (r *Receipt) UnmarshalBinary(b []byte) error {
	if len(b) == 0 {
		return ErrInvalidRLP
	}
	var (
		body    rlpReceipt
		typ     uint8
		payload []byte
	)
	if b[0] > 0x7f {
		typ = LegacyTxType
		payload = b
	} else {
		if len(b) < 2 {
			return ErrInvalidRLP
		}
		typ = b[0]
		payload = b[1:]
	}
	if err := rlp.DecodeBytes(payload, &body); err != nil {
		return err
	}
	r.Type = typ
	r.Bloom = body.Bloom
	r.CumulativeGasUsed = body.CumulativeGasUsed
	r.Logs = make([]*Log, len(body.Logs))
	for i, l := range body.Logs {
		r.Logs[i] = &Log{Address: l.Address, Topics: l.Topics, Data: l.Data}
	}
	switch len(body.PostStateOrStatus) {
	case 0:
		r.Status = ReceiptStatusFailed
	case 1:
		r.Status = ReceiptStatusSuccessful
	default:
		r.PostState = body.PostStateOrStatus
	}
	return nil
}

// Receipts is the slice form a block body carries.
type Receipts []*Receipt

func (r Receipts) Len() int { return len(r) }

// Bloom aggregates the logs bloom across every receipt in a block.
func (r Receipts) Bloom() Bloom {
	var out Bloom
	for _, receipt := range r {
		MergeBloom(&out, receipt.Logs)
	}
	return out
}
