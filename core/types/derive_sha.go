package types

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"
)

// EmptyRootHash is the MPT root of an empty list, used for TxHash,
// ReceiptHash and WithdrawalsHash when a block carries none of that kind.
var EmptyRootHash = common.HexToHash("56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421")

// DerivableList is anything DeriveSha can build a trie root over: index i
// maps to the RLP-encoded leaf written into buf.
type DerivableList interface {
	Len() int
	EncodeIndex(i int, buf *bytes.Buffer)
}

// DeriveSha computes the MPT root over list using an ephemeral stack trie,
// the same construction used for transactions, receipts and withdrawals
// roots. Trie construction itself is an external primitive (spec.md's
// Non-goals exclude Merkle-Patricia-Trie storage); only the derivation
// glue lives in this module.
func DeriveSha(list DerivableList) common.Hash {
	t := trie.NewStackTrie(nil)
	valueBuf := new(bytes.Buffer)
	var indexBuf []byte
	for i := 0; i < list.Len(); i++ {
		indexBuf = rlp.AppendUint64(indexBuf[:0], uint64(i))
		valueBuf.Reset()
		list.EncodeIndex(i, valueBuf)
		t.Update(indexBuf, valueBuf.Bytes())
	}
	return t.Hash()
}

func (s Transactions) EncodeIndex(i int, w *bytes.Buffer) {
	tx := s[i]
	if err := tx.encodeTyped(w); err != nil {
		panic(err)
	}
}

func (r Receipts) EncodeIndex(i int, w *bytes.Buffer) {
	receipt := r[i]
	b, err := receipt.MarshalBinary()
	if err != nil {
		panic(err)
	}
	w.Write(b)
}

func (w Withdrawals) Len() int { return len(w) }

func (ws Withdrawals) EncodeIndex(i int, w *bytes.Buffer) {
	rlp.Encode(w, ws[i])
}
