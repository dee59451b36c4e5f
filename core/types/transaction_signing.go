package types

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer recovers sender addresses and computes signing hashes. The chain
// of embedded signer structs below mirrors the chain of hardforks that
// loosened or changed the signing rule: each later signer falls back to
// its parent for any tx type it does not itself own (spec.md §4.2
// "Signer resolution").
type Signer interface {
	// Sender recovers the signing address from a signed transaction.
	Sender(tx *Transaction) (common.Address, error)

	// SignatureValues returns the raw (v, r, s) to attach to tx for the
	// given 65-byte secp256k1 signature.
	SignatureValues(tx *Transaction, sig []byte) (r, s, v *big.Int, err error)

	// Hash returns the message_to_sign digest for tx (spec.md §4.2).
	Hash(tx *Transaction) common.Hash

	ChainID() *big.Int

	// Equal reports whether this signer produces identical results to s2.
	Equal(s2 Signer) bool
}

// MakeSigner returns the signer appropriate for hf given the chain's ID;
// callers choose the signer the same way the chain resolves its active
// hardfork (see params.ChainConfig.GetHardforkBy).
func MakeSigner(chainID *big.Int, hasEIP2930, hasLondon, hasCancun bool) Signer {
	var signer Signer = newEIP155Signer(chainID)
	if hasEIP2930 {
		signer = newEIP2930Signer(chainID)
	}
	if hasLondon {
		signer = newLondonSigner(chainID)
	}
	if hasCancun {
		signer = newCancunSigner(chainID)
	}
	return signer
}

// LatestSigner returns the signer for the newest ruleset this module
// implements (post-Cancun, pre-EIP-7706).
func LatestSigner(chainID *big.Int) Signer {
	return newCancunSigner(chainID)
}

// secp256k1halfN is the upper bound on S enforced by the homestead
// signature-malleability fix (spec.md §4.2 "homestead S check").
var secp256k1halfN = new(big.Int).Rsh(crypto.S256().Params().N, 1)

// -- eip155Signer --------------------------------------------------------

// eip155Signer signs legacy transactions with replay protection baked
// into V (EIP-155). It is the root of the signer chain: every later
// signer falls back to it for LegacyTx.
type eip155Signer struct {
	chainID, chainIDMul *big.Int
}

func newEIP155Signer(chainID *big.Int) eip155Signer {
	if chainID == nil {
		chainID = new(big.Int)
	}
	return eip155Signer{chainID: chainID, chainIDMul: new(big.Int).Mul(chainID, big.NewInt(2))}
}

func (s eip155Signer) ChainID() *big.Int { return s.chainID }

func (s eip155Signer) Equal(s2 Signer) bool {
	other, ok := s2.(eip155Signer)
	return ok && other.chainID.Cmp(s.chainID) == 0
}

func (s eip155Signer) Sender(tx *Transaction) (common.Address, error) {
	if tx.Type() != LegacyTxType {
		return common.Address{}, ErrTxTypeNotSupported
	}
	v, r, sig := tx.RawSignatureValues()
	V := deriveV(v, s.chainID)
	if V != 27 && V != 28 {
		return common.Address{}, ErrInvalidSig
	}
	return recoverPlain(s.Hash(tx), r, sig, new(big.Int).SetUint64(V-27), true)
}

func (s eip155Signer) SignatureValues(tx *Transaction, sig []byte) (r, sv, v *big.Int, err error) {
	r, sv, v, err = decodeSignature(sig)
	if err != nil {
		return nil, nil, nil, err
	}
	if s.chainID.Sign() != 0 {
		v.Add(v, s.chainIDMul)
		v.Add(v, big.NewInt(35))
	} else {
		v.Add(v, big.NewInt(27))
	}
	return r, sv, v, nil
}

func (s eip155Signer) Hash(tx *Transaction) common.Hash {
	lt, ok := tx.inner.(*LegacyTx)
	if !ok {
		return common.Hash{}
	}
	return rlpHash([]interface{}{
		lt.Nonce, lt.GasPrice, lt.Gas, lt.To, lt.Value, lt.Data,
		s.chainID, uint(0), uint(0),
	})
}

// -- eip2930Signer --------------------------------------------------------

// eip2930Signer adds EIP-2930 access-list tx support on top of eip155Signer.
type eip2930Signer struct {
	eip155Signer
}

func newEIP2930Signer(chainID *big.Int) eip2930Signer {
	return eip2930Signer{newEIP155Signer(chainID)}
}

func (s eip2930Signer) Equal(s2 Signer) bool {
	other, ok := s2.(eip2930Signer)
	return ok && other.chainID.Cmp(s.chainID) == 0
}

func (s eip2930Signer) Sender(tx *Transaction) (common.Address, error) {
	if tx.Type() != AccessListTxType {
		return s.eip155Signer.Sender(tx)
	}
	v, r, sig := tx.RawSignatureValues()
	if !validateSignatureValues(byte(v.Uint64()), r, sig, false) {
		return common.Address{}, ErrInvalidSig
	}
	if tx.ChainId().Cmp(s.chainID) != 0 {
		return common.Address{}, ErrInvalidChainId
	}
	return recoverPlain(s.Hash(tx), r, sig, v, false)
}

func (s eip2930Signer) SignatureValues(tx *Transaction, sig []byte) (r, sv, v *big.Int, err error) {
	if tx.Type() != AccessListTxType {
		return s.eip155Signer.SignatureValues(tx, sig)
	}
	r, sv, v, err = decodeSignature(sig)
	return r, sv, v, err
}

func (s eip2930Signer) Hash(tx *Transaction) common.Hash {
	if tx.Type() != AccessListTxType {
		return s.eip155Signer.Hash(tx)
	}
	at := tx.inner.(*AccessListTx)
	return prefixedRlpHash(AccessListTxType, []interface{}{
		s.chainID, at.Nonce, at.GasPrice, at.Gas, at.To, at.Value, at.Data, at.AccessList,
	})
}

// -- londonSigner ----------------------------------------------------------

// londonSigner adds EIP-1559 dynamic-fee tx support.
type londonSigner struct {
	eip2930Signer
}

func newLondonSigner(chainID *big.Int) londonSigner {
	return londonSigner{newEIP2930Signer(chainID)}
}

func (s londonSigner) Equal(s2 Signer) bool {
	other, ok := s2.(londonSigner)
	return ok && other.chainID.Cmp(s.chainID) == 0
}

func (s londonSigner) Sender(tx *Transaction) (common.Address, error) {
	if tx.Type() != DynamicFeeTxType {
		return s.eip2930Signer.Sender(tx)
	}
	v, r, sig := tx.RawSignatureValues()
	if !validateSignatureValues(byte(v.Uint64()), r, sig, false) {
		return common.Address{}, ErrInvalidSig
	}
	if tx.ChainId().Cmp(s.chainID) != 0 {
		return common.Address{}, ErrInvalidChainId
	}
	return recoverPlain(s.Hash(tx), r, sig, v, false)
}

func (s londonSigner) SignatureValues(tx *Transaction, sig []byte) (r, sv, v *big.Int, err error) {
	if tx.Type() != DynamicFeeTxType {
		return s.eip2930Signer.SignatureValues(tx, sig)
	}
	return decodeSignature(sig)
}

func (s londonSigner) Hash(tx *Transaction) common.Hash {
	if tx.Type() != DynamicFeeTxType {
		return s.eip2930Signer.Hash(tx)
	}
	dt := tx.inner.(*DynamicFeeTx)
	return prefixedRlpHash(DynamicFeeTxType, []interface{}{
		s.chainID, dt.Nonce, dt.GasTipCap, dt.GasFeeCap, dt.Gas, dt.To, dt.Value, dt.Data, dt.AccessList,
	})
}

// -- cancunSigner -----------------------------------------------------------

// cancunSigner adds EIP-4844 blob tx support. It is the newest signer this
// module implements; there is no vector-fee extension on top of it.
type cancunSigner struct {
	londonSigner
}

func newCancunSigner(chainID *big.Int) cancunSigner {
	return cancunSigner{newLondonSigner(chainID)}
}

func (s cancunSigner) Equal(s2 Signer) bool {
	other, ok := s2.(cancunSigner)
	return ok && other.chainID.Cmp(s.chainID) == 0
}

func (s cancunSigner) Sender(tx *Transaction) (common.Address, error) {
	if tx.Type() != BlobTxType {
		return s.londonSigner.Sender(tx)
	}
	v, r, sig := tx.RawSignatureValues()
	if !validateSignatureValues(byte(v.Uint64()), r, sig, false) {
		return common.Address{}, ErrInvalidSig
	}
	if tx.ChainId().Cmp(s.chainID) != 0 {
		return common.Address{}, ErrInvalidChainId
	}
	return recoverPlain(s.Hash(tx), r, sig, v, false)
}

func (s cancunSigner) SignatureValues(tx *Transaction, sig []byte) (r, sv, v *big.Int, err error) {
	if tx.Type() != BlobTxType {
		return s.londonSigner.SignatureValues(tx, sig)
	}
	return decodeSignature(sig)
}

func (s cancunSigner) Hash(tx *Transaction) common.Hash {
	if tx.Type() != BlobTxType {
		return s.londonSigner.Hash(tx)
	}
	bt := tx.inner.(*BlobTx)
	return prefixedRlpHash(BlobTxType, []interface{}{
		bt.ChainID, bt.Nonce, bt.GasTipCap, bt.GasFeeCap, bt.Gas, bt.To, bt.Value, bt.Data,
		bt.AccessList, bt.BlobFeeCap, bt.BlobHashes,
	})
}

// -- shared helpers ---------------------------------------------------------

func deriveV(v, chainID *big.Int) uint64 {
	if chainID.Sign() == 0 {
		return v.Uint64()
	}
	chainIDMul := new(big.Int).Mul(chainID, big.NewInt(2))
	V := new(big.Int).Sub(v, chainIDMul)
	return V.Sub(V, big.NewInt(8)).Uint64()
}

// validateSignatureValues checks (v, r, s) against the curve order and,
// when homestead is in effect, the low-S malleability rule (spec.md §4.2).
func validateSignatureValues(v byte, r, s *big.Int, homestead bool) bool {
	if r == nil || s == nil {
		return false
	}
	if v != 0 && v != 1 {
		return false
	}
	if r.Sign() <= 0 || s.Sign() <= 0 {
		return false
	}
	if r.Cmp(crypto.S256().Params().N) >= 0 || s.Cmp(crypto.S256().Params().N) >= 0 {
		return false
	}
	if homestead && s.Cmp(secp256k1halfN) > 0 {
		return false
	}
	return true
}

func decodeSignature(sig []byte) (r, s, v *big.Int, err error) {
	if len(sig) != 65 {
		return nil, nil, nil, ErrInvalidSig
	}
	r = new(big.Int).SetBytes(sig[:32])
	s = new(big.Int).SetBytes(sig[32:64])
	v = new(big.Int).SetBytes([]byte{sig[64]})
	return r, s, v, nil
}

func recoverPlain(sighash common.Hash, r, s, v *big.Int, homestead bool) (common.Address, error) {
	if !validateSignatureValues(byte(v.Uint64()), r, s, homestead) {
		return common.Address{}, ErrInvalidSig
	}
	sig := make([]byte, 65)
	r.FillBytes(sig[:32])
	s.FillBytes(sig[32:64])
	sig[64] = byte(v.Uint64())

	pub, err := crypto.Ecrecover(sighash[:], sig)
	if err != nil {
		return common.Address{}, err
	}
	if len(pub) == 0 || pub[0] != 4 {
		return common.Address{}, ErrInvalidSig
	}
	var addr common.Address
	copy(addr[:], crypto.Keccak256(pub[1:])[12:])
	return addr, nil
}

// SignTx signs tx with prv using s, returning the frozen, signed result.
func SignTx(tx *Transaction, s Signer, prv *ecdsa.PrivateKey) (*Transaction, error) {
	h := s.Hash(tx)
	sig, err := crypto.Sign(h[:], prv)
	if err != nil {
		return nil, err
	}
	return tx.WithSignature(s, sig)
}

// WithSignature returns a new Transaction sharing tx's body but carrying
// the (v, r, s) that SignatureValues derives from sig.
func (tx *Transaction) WithSignature(signer Signer, sig []byte) (*Transaction, error) {
	r, s, v, err := signer.SignatureValues(tx, sig)
	if err != nil {
		return nil, err
	}
	cpy := tx.inner.copy()
	cpy.setSignatureValues(signer.ChainID(), v, r, s)
	return &Transaction{inner: cpy}, nil
}

// Sender recovers and caches the sending address using signer.
func Sender(signer Signer, tx *Transaction) (common.Address, error) {
	if cached := tx.from.Load(); cached != nil && cached.signer.Equal(signer) {
		return cached.from, nil
	}
	addr, err := signer.Sender(tx)
	if err != nil {
		return common.Address{}, err
	}
	tx.from.Store(&sigCache{signer: signer, from: addr})
	return addr, nil
}
