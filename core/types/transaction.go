// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package types implements the typed transaction envelopes, block header
// and receipt shapes of spec.md §3-§4.2.
package types

import (
	"bytes"
	"fmt"
	"io"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// Transaction type identifiers (spec.md §6 "Typed tx wire format").
const (
	LegacyTxType = 0x00
	AccessListTxType = 0x01
	DynamicFeeTxType = 0x02
	BlobTxType       = 0x03
)

// TxData is the tagged-sum capability set every transaction shape
// implements (spec.md §9 "Dynamic type dispatch"). There is no open
// inheritance: adding a new shape means adding a new type that satisfies
// this interface, never subclassing an existing one.
type TxData interface {
	txType() byte
	copy() TxData // deep copy, every pointer field independent

	chainID() *big.Int
	accessList() AccessList
	data() []byte
	gas() uint64
	gasPrice() *big.Int
	gasTipCap() *big.Int
	gasFeeCap() *big.Int
	value() *big.Int
	nonce() uint64
	to() *common.Address

	rawSignatureValues() (v, r, s *big.Int)
	setSignatureValues(chainID, v, r, s *big.Int)

	// effectiveGasPrice computes the price actually paid given an
	// inclusion block's base fee; dst may be reused as scratch space.
	effectiveGasPrice(dst *big.Int, baseFee *big.Int) *big.Int

	encode(*bytes.Buffer) error
	decode([]byte) error
}

// Transaction is the frozen wrapper around one TxData shape (spec.md §3
// "Tx objects are frozen upon construction"). Construct via
// NewTx/FromSerializedTx, never by assembling the struct directly.
type Transaction struct {
	inner TxData
	time  int64 // best-effort local-clock hint, not consensus data

	// caches, computed lazily and then fixed for the object's lifetime
	hash atomic.Pointer[common.Hash]
	size atomic.Uint64
	from atomic.Pointer[sigCache]
}

type sigCache struct {
	signer Signer
	from   common.Address
}

// NewTx creates an unsigned transaction wrapping a copy of inner. SignTx
// returns a new Transaction whose inner copy carries (v, r, s).
func NewTx(inner TxData) *Transaction {
	tx := new(Transaction)
	tx.setDecoded(inner.copy(), 0)
	return tx
}

func (tx *Transaction) setDecoded(inner TxData, size uint64) {
	tx.inner = inner
	if size > 0 {
		tx.size.Store(size)
	}
}

// Type returns the EIP-2718 envelope type byte (0 for legacy).
func (tx *Transaction) Type() uint8 { return tx.inner.txType() }

func (tx *Transaction) ChainId() *big.Int { return tx.inner.chainID() }
func (tx *Transaction) Data() []byte      { return tx.inner.data() }
func (tx *Transaction) AccessList() AccessList { return tx.inner.accessList() }
func (tx *Transaction) Gas() uint64       { return tx.inner.gas() }
func (tx *Transaction) GasPrice() *big.Int { return new(big.Int).Set(tx.inner.gasPrice()) }
func (tx *Transaction) GasTipCap() *big.Int { return new(big.Int).Set(tx.inner.gasTipCap()) }
func (tx *Transaction) GasFeeCap() *big.Int { return new(big.Int).Set(tx.inner.gasFeeCap()) }
func (tx *Transaction) Value() *big.Int    { return new(big.Int).Set(tx.inner.value()) }
func (tx *Transaction) Nonce() uint64      { return tx.inner.nonce() }
func (tx *Transaction) To() *common.Address {
	return copyAddressPtr(tx.inner.to())
}

// IsCreate reports whether this transaction creates a contract (no `to`).
func (tx *Transaction) IsCreate() bool { return tx.inner.to() == nil }

// RawSignatureValues returns the raw (v, r, s) as supplied in the envelope
// (for typed tx, v is the bare y-parity/recovery byte, not yet offset).
func (tx *Transaction) RawSignatureValues() (v, r, s *big.Int) {
	return tx.inner.rawSignatureValues()
}

// GasFeeCapCmp compares the tx's fee cap to other's.
func (tx *Transaction) GasFeeCapCmp(other *Transaction) int {
	return tx.inner.gasFeeCap().Cmp(other.inner.gasFeeCap())
}

// EffectiveGasTip returns min(gasTipCap, gasFeeCap-baseFee); spec.md §4.8's
// ordering key. Returns an error if the fee cap is below the base fee.
func (tx *Transaction) EffectiveGasTip(baseFee *big.Int) (*big.Int, error) {
	if baseFee == nil {
		return tx.GasTipCap(), nil
	}
	feeCap := tx.GasFeeCap()
	if feeCap.Cmp(baseFee) < 0 {
		return nil, ErrMaxFeeLessThanTip
	}
	gasFeeCapRemainder := new(big.Int).Sub(feeCap, baseFee)
	gasTipCap := tx.GasTipCap()
	if gasTipCap.Cmp(gasFeeCapRemainder) < 0 {
		return gasTipCap, nil
	}
	return gasFeeCapRemainder, nil
}

// BlobGasFeeCap, BlobHashes, BlobTxSidecar are nil/zero for non-blob tx;
// real values are surfaced only by BlobTx, following go-ethereum's pattern
// of reaching into tx.inner rather than widening TxData for one variant.
func (tx *Transaction) BlobGasFeeCap() *big.Int {
	if b, ok := tx.inner.(*BlobTx); ok {
		return b.BlobFeeCap.ToBig()
	}
	return nil
}

func (tx *Transaction) BlobHashes() []common.Hash {
	if b, ok := tx.inner.(*BlobTx); ok {
		return b.BlobHashes
	}
	return nil
}

func (tx *Transaction) BlobGas() uint64 {
	if b, ok := tx.inner.(*BlobTx); ok {
		return uint64(len(b.BlobHashes)) * BlobTxBlobGasPerBlob
	}
	return 0
}

func (tx *Transaction) BlobTxSidecar() *BlobTxSidecar {
	if b, ok := tx.inner.(*BlobTx); ok {
		return b.Sidecar
	}
	return nil
}

// BlobTxBlobGasPerBlob is spec.md's per-blob gas constant, mirrored here
// to avoid an import cycle back into params from core/types.
const BlobTxBlobGasPerBlob = 1 << 17

// Hash returns the canonical transaction hash (spec.md §6): keccak256 of
// the typed envelope (type || rlp(body)) for typed tx, or keccak256 of the
// bare RLP for legacy. Only meaningful once the tx is signed.
func (tx *Transaction) Hash() common.Hash {
	if cached := tx.hash.Load(); cached != nil {
		return *cached
	}
	var h common.Hash
	if tx.Type() == LegacyTxType {
		h = rlpHash(tx.inner)
	} else {
		h = prefixedRlpHash(tx.Type(), tx.inner)
	}
	tx.hash.Store(&h)
	return h
}

// Size returns the true RLP-encoded storage size of the transaction,
// cached after the first computation.
func (tx *Transaction) Size() uint64 {
	if cached := tx.size.Load(); cached != 0 {
		return cached
	}
	buf := new(bytes.Buffer)
	if err := tx.encodeTyped(buf); err != nil {
		return 0
	}
	size := uint64(buf.Len())
	tx.size.Store(size)
	return size
}

func (tx *Transaction) encodeTyped(buf *bytes.Buffer) error {
	if tx.Type() != LegacyTxType {
		buf.WriteByte(tx.Type())
	}
	return tx.inner.encode(buf)
}

// MarshalBinary implements the EIP-2718 "serialize()" operation: the typed
// envelope type||rlp(body), or bare rlp(body) for legacy.
func (tx *Transaction) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := tx.encodeTyped(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements from_serialized_tx.
func (tx *Transaction) UnmarshalBinary(b []byte) error {
	if len(b) == 0 {
		return ErrInvalidRLP
	}
	if b[0] > 0x7f {
		// untyped RLP list: legacy transaction.
		var inner LegacyTx
		if err := rlp.DecodeBytes(b, &inner); err != nil {
			return err
		}
		tx.setDecoded(&inner, uint64(len(b)))
		return nil
	}
	inner, err := decodeTyped(b)
	if err != nil {
		return err
	}
	tx.setDecoded(inner, uint64(len(b)))
	return nil
}

func decodeTyped(b []byte) (TxData, error) {
	if len(b) <= 1 {
		return nil, ErrInvalidRLP
	}
	var inner TxData
	switch b[0] {
	case AccessListTxType:
		inner = new(AccessListTx)
	case DynamicFeeTxType:
		inner = new(DynamicFeeTx)
	case BlobTxType:
		inner = new(BlobTx)
	default:
		return nil, ErrTxTypeNotSupported
	}
	if err := inner.decode(b[1:]); err != nil {
		return nil, err
	}
	return inner, nil
}

// FromSerializedTx rejects a mismatched leading type byte with
// ErrWrongTxType (spec.md §4.2), unlike the permissive UnmarshalBinary.
func FromSerializedTx(wantType byte, b []byte) (*Transaction, error) {
	tx := new(Transaction)
	if err := tx.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	if tx.Type() != wantType {
		return nil, fmt.Errorf("%w: want %d have %d", ErrWrongTxType, wantType, tx.Type())
	}
	return tx, nil
}

// EncodeRLP / DecodeRLP make *Transaction itself usable as a field inside
// other RLP-encoded structures (block bodies), matching how `rlp` treats
// any object satisfying the rlp.Encoder/Decoder interfaces.
func (tx *Transaction) EncodeRLP(w io.Writer) error {
	if tx.Type() == LegacyTxType {
		return rlp.Encode(w, tx.inner)
	}
	buf := new(bytes.Buffer)
	if err := tx.encodeTyped(buf); err != nil {
		return err
	}
	return rlp.Encode(w, buf.Bytes())
}

func (tx *Transaction) DecodeRLP(s *rlp.Stream) error {
	kind, _, err := s.Kind()
	if err != nil {
		return err
	}
	if kind == rlp.List {
		var inner LegacyTx
		if err := s.Decode(&inner); err != nil {
			return err
		}
		tx.setDecoded(&inner, 0)
		return nil
	}
	b, err := s.Bytes()
	if err != nil {
		return err
	}
	inner, err := decodeTyped(b)
	if err != nil {
		return err
	}
	tx.setDecoded(inner, uint64(len(b)))
	return nil
}

// Transactions implements the slice of transactions a block body carries,
// plus DeriveSha support.
type Transactions []*Transaction

func (s Transactions) Len() int { return len(s) }

// copyAddressPtr copies an *common.Address, preserving nil.
func copyAddressPtr(a *common.Address) *common.Address {
	if a == nil {
		return nil
	}
	cpy := *a
	return &cpy
}
