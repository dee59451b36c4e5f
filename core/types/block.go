package types

import (
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
)

// BlockNonce is the consensus proof-of-work nonce (legacy pre-merge field,
// kept because header RLP shape must stay stable across hardforks).
type BlockNonce [8]byte

func EncodeNonce(i uint64) BlockNonce {
	var n BlockNonce
	for idx := 7; idx >= 0; idx-- {
		n[idx] = byte(i)
		i >>= 8
	}
	return n
}

// Header is a block header, carrying every field the hardforks in scope
// introduced (spec.md §3/§6). ParentBeaconBlockRoot and RequestsHash are
// intentionally absent: the EIPs that introduce them are outside this
// module's EIP list.
type Header struct {
	ParentHash  common.Hash
	UncleHash   common.Hash
	Coinbase    common.Address
	Root        common.Hash
	TxHash      common.Hash
	ReceiptHash common.Hash
	Bloom       Bloom
	Difficulty  *big.Int
	Number      *big.Int
	GasLimit    uint64
	GasUsed     uint64
	Time        uint64
	Extra       []byte
	MixDigest   common.Hash
	Nonce       BlockNonce

	// BaseFee is non-nil from London onward (EIP-1559).
	BaseFee *big.Int `rlp:"optional"`

	// WithdrawalsHash is non-nil from Shanghai onward (EIP-4895).
	WithdrawalsHash *common.Hash `rlp:"optional"`

	// BlobGasUsed/ExcessBlobGas are non-nil from Cancun onward (EIP-4844).
	BlobGasUsed   *uint64 `rlp:"optional"`
	ExcessBlobGas *uint64 `rlp:"optional"`
}

// Hash returns the block hash: keccak256 of the RLP-encoded header.
func (h *Header) Hash() common.Hash {
	return rlpHash(h)
}

// Body groups everything that accompanies a header in a full block.
type Body struct {
	Transactions Transactions
	Uncles       []*Header
	Withdrawals  Withdrawals `rlp:"optional"`
}

// Block is an immutable header+body pair. The receipts passed to NewBlock
// only feed the header's receipt root and bloom; the Block does not keep them.
type Block struct {
	header       *Header
	transactions Transactions
	withdrawals  Withdrawals
	uncles       []*Header

	hash atomic.Pointer[common.Hash]
}

// NewBlock assembles a block from a header template and its body,
// recomputing the transaction/receipt/withdrawal trie roots and the
// receipts bloom into a copy of the header (spec.md §4.8 "finalize").
func NewBlock(header *Header, txs Transactions, receipts Receipts, withdrawals Withdrawals) *Block {
	b := &Block{header: CopyHeader(header)}

	if len(txs) == 0 {
		b.header.TxHash = EmptyRootHash
	} else {
		b.header.TxHash = DeriveSha(txs)
		b.transactions = make(Transactions, len(txs))
		copy(b.transactions, txs)
	}

	if len(receipts) == 0 {
		b.header.ReceiptHash = EmptyRootHash
	} else {
		b.header.ReceiptHash = DeriveSha(receipts)
		b.header.Bloom = receipts.Bloom()
	}

	if withdrawals == nil && b.header.WithdrawalsHash != nil {
		root := EmptyRootHash
		b.header.WithdrawalsHash = &root
	} else if withdrawals != nil {
		root := DeriveSha(withdrawals)
		b.header.WithdrawalsHash = &root
		b.withdrawals = make(Withdrawals, len(withdrawals))
		copy(b.withdrawals, withdrawals)
	}

	return b
}

// CopyHeader returns a deep copy of h, including its optional pointer
// fields, so callers can mutate the copy without aliasing the original.
func CopyHeader(h *Header) *Header {
	cpy := *h
	if cpy.Difficulty = new(big.Int); h.Difficulty != nil {
		cpy.Difficulty.Set(h.Difficulty)
	}
	if cpy.Number = new(big.Int); h.Number != nil {
		cpy.Number.Set(h.Number)
	}
	if h.BaseFee != nil {
		cpy.BaseFee = new(big.Int).Set(h.BaseFee)
	}
	if len(h.Extra) > 0 {
		cpy.Extra = common.CopyBytes(h.Extra)
	}
	if h.WithdrawalsHash != nil {
		root := *h.WithdrawalsHash
		cpy.WithdrawalsHash = &root
	}
	if h.BlobGasUsed != nil {
		v := *h.BlobGasUsed
		cpy.BlobGasUsed = &v
	}
	if h.ExcessBlobGas != nil {
		v := *h.ExcessBlobGas
		cpy.ExcessBlobGas = &v
	}
	return &cpy
}

func (b *Block) Header() *Header             { return CopyHeader(b.header) }
func (b *Block) Transactions() Transactions  { return b.transactions }
func (b *Block) Withdrawals() Withdrawals    { return b.withdrawals }
func (b *Block) Number() *big.Int            { return new(big.Int).Set(b.header.Number) }
func (b *Block) GasLimit() uint64            { return b.header.GasLimit }
func (b *Block) GasUsed() uint64             { return b.header.GasUsed }
func (b *Block) Time() uint64                { return b.header.Time }
func (b *Block) BaseFee() *big.Int {
	if b.header.BaseFee == nil {
		return nil
	}
	return new(big.Int).Set(b.header.BaseFee)
}

func (b *Block) Hash() common.Hash {
	if cached := b.hash.Load(); cached != nil {
		return *cached
	}
	h := b.header.Hash()
	b.hash.Store(&h)
	return h
}
