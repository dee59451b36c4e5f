package types

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

// BlobTx implements the EIP-4844 transaction shape. Amounts use uint256
// rather than big.Int, matching go-ethereum's post-Cancun convention of
// fixed-width arithmetic for values that are consensus-bounded to 256
// bits anyway. Sidecar travels only in the network envelope, never in
// the consensus body or the signing payload (spec.md §4.2/§6).
type BlobTx struct {
	ChainID    *uint256.Int
	Nonce      uint64
	GasTipCap  *uint256.Int
	GasFeeCap  *uint256.Int
	Gas        uint64
	To         common.Address
	Value      *uint256.Int
	Data       []byte
	AccessList AccessList
	BlobFeeCap *uint256.Int
	BlobHashes []common.Hash

	V *uint256.Int
	R *uint256.Int
	S *uint256.Int

	Sidecar *BlobTxSidecar `rlp:"-"`
}

func NewBlobTx(chainID uint64, nonce uint64, to common.Address, value *uint256.Int, gas uint64, gasTipCap, gasFeeCap, blobFeeCap *uint256.Int, data []byte, al AccessList, blobHashes []common.Hash) *Transaction {
	return NewTx(&BlobTx{
		ChainID:    uint256.NewInt(chainID),
		Nonce:      nonce,
		To:         to,
		Value:      value,
		Gas:        gas,
		GasTipCap:  gasTipCap,
		GasFeeCap:  gasFeeCap,
		BlobFeeCap: blobFeeCap,
		Data:       data,
		AccessList: al,
		BlobHashes: blobHashes,
	})
}

func (tx *BlobTx) copy() TxData {
	cpy := &BlobTx{
		Nonce:      tx.Nonce,
		To:         tx.To,
		Data:       common.CopyBytes(tx.Data),
		Gas:        tx.Gas,
		AccessList: tx.AccessList.Copy(),
		BlobHashes: append([]common.Hash(nil), tx.BlobHashes...),
		Value:      new(uint256.Int),
		ChainID:    new(uint256.Int),
		GasTipCap:  new(uint256.Int),
		GasFeeCap:  new(uint256.Int),
		BlobFeeCap: new(uint256.Int),
		V:          new(uint256.Int),
		R:          new(uint256.Int),
		S:          new(uint256.Int),
	}
	if tx.Value != nil {
		cpy.Value.Set(tx.Value)
	}
	if tx.ChainID != nil {
		cpy.ChainID.Set(tx.ChainID)
	}
	if tx.GasTipCap != nil {
		cpy.GasTipCap.Set(tx.GasTipCap)
	}
	if tx.GasFeeCap != nil {
		cpy.GasFeeCap.Set(tx.GasFeeCap)
	}
	if tx.BlobFeeCap != nil {
		cpy.BlobFeeCap.Set(tx.BlobFeeCap)
	}
	if tx.V != nil {
		cpy.V.Set(tx.V)
	}
	if tx.R != nil {
		cpy.R.Set(tx.R)
	}
	if tx.S != nil {
		cpy.S.Set(tx.S)
	}
	if tx.Sidecar != nil {
		sc := *tx.Sidecar
		cpy.Sidecar = &sc
	}
	return cpy
}

func (tx *BlobTx) txType() byte           { return BlobTxType }
func (tx *BlobTx) chainID() *big.Int      { return tx.ChainID.ToBig() }
func (tx *BlobTx) accessList() AccessList { return tx.AccessList }
func (tx *BlobTx) data() []byte           { return tx.Data }
func (tx *BlobTx) gas() uint64            { return tx.Gas }
func (tx *BlobTx) gasPrice() *big.Int     { return tx.GasFeeCap.ToBig() }
func (tx *BlobTx) gasTipCap() *big.Int    { return tx.GasTipCap.ToBig() }
func (tx *BlobTx) gasFeeCap() *big.Int    { return tx.GasFeeCap.ToBig() }
func (tx *BlobTx) value() *big.Int        { return tx.Value.ToBig() }
func (tx *BlobTx) nonce() uint64          { return tx.Nonce }
func (tx *BlobTx) to() *common.Address {
	to := tx.To
	return &to
}

func (tx *BlobTx) rawSignatureValues() (v, r, s *big.Int) {
	return tx.V.ToBig(), tx.R.ToBig(), tx.S.ToBig()
}

func (tx *BlobTx) setSignatureValues(chainID, v, r, s *big.Int) {
	tx.ChainID, _ = uint256.FromBig(chainID)
	tx.V, _ = uint256.FromBig(v)
	tx.R, _ = uint256.FromBig(r)
	tx.S, _ = uint256.FromBig(s)
}

func (tx *BlobTx) effectiveGasPrice(dst *big.Int, baseFee *big.Int) *big.Int {
	if baseFee == nil {
		return dst.Set(tx.GasFeeCap.ToBig())
	}
	dst.Add(tx.GasTipCap.ToBig(), baseFee)
	feeCap := tx.GasFeeCap.ToBig()
	if dst.Cmp(feeCap) > 0 {
		dst.Set(feeCap)
	}
	return dst
}

// encode writes the consensus body only; Sidecar, when present, is
// appended separately by the network wrapper in tx_blob_sidecar.go.
func (tx *BlobTx) encode(b *bytes.Buffer) error {
	return rlp.Encode(b, tx)
}

func (tx *BlobTx) decode(input []byte) error {
	return rlp.DecodeBytes(input, tx)
}
