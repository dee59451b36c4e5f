package types

import (
	"crypto/sha256"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto/kzg4844"
)

// BlobTxSidecar carries the blobs, commitments and proofs that travel
// alongside a blob transaction over the network, but never enter the
// consensus body or the signing payload (spec.md §3/§6).
type BlobTxSidecar struct {
	Blobs       []kzg4844.Blob
	Commitments []kzg4844.Commitment
	Proofs      []kzg4844.Proof
}

// blobHashVersion is EIP-4844's VERSIONED_HASH_VERSION_KZG.
const blobHashVersion = 0x01

// BlobHashes derives the versioned hashes (0x01 prefix + sha256 of the
// commitment) for each commitment in the sidecar, per EIP-4844.
func (sc *BlobTxSidecar) BlobHashes() []common.Hash {
	hasher := sha256.New()
	hashes := make([]common.Hash, len(sc.Commitments))
	for i, c := range sc.Commitments {
		hashes[i] = calcBlobHashV1(hasher, &c)
	}
	return hashes
}

func calcBlobHashV1(hasher interface {
	Reset()
	Write(p []byte) (int, error)
	Sum(b []byte) []byte
}, commit *kzg4844.Commitment) (h common.Hash) {
	hasher.Reset()
	hasher.Write(commit[:])
	sum := hasher.Sum(nil)
	copy(h[:], sum)
	h[0] = blobHashVersion
	return h
}

// ValidateBlobSidecar checks a sidecar against a transaction's declared
// BlobHashes: shape consistency, versioned-hash derivation, and KZG proof
// verification for every blob (spec.md §4.2 "blob validation").
func ValidateBlobSidecar(tx *Transaction) error {
	sc := tx.BlobTxSidecar()
	if sc == nil {
		return nil
	}
	hashes := tx.BlobHashes()
	if len(sc.Blobs) != len(hashes) || len(sc.Commitments) != len(hashes) || len(sc.Proofs) != len(hashes) {
		return ErrBlobCountOutOfRange
	}
	computed := sc.BlobHashes()
	for i, hash := range hashes {
		if computed[i] != hash {
			return ErrVersionedHashMismatch
		}
	}
	for i := range sc.Blobs {
		if err := kzg4844.VerifyBlobProof(&sc.Blobs[i], sc.Commitments[i], sc.Proofs[i]); err != nil {
			return ErrKZGProofInvalid
		}
	}
	return nil
}
