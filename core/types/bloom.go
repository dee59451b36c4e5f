package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// BloomByteLength / BloomBitLength are the Ethereum consensus bloom filter
// dimensions (2048 bits).
const (
	BloomByteLength = 256
	BloomBitLength  = 8 * BloomByteLength
)

// Bloom is a 2048-bit log bloom filter attached to every receipt.
type Bloom [BloomByteLength]byte

// BytesToBloom converts b to a Bloom, left-padding as needed; it panics if
// b is longer than a Bloom.
func BytesToBloom(b []byte) Bloom {
	var bloom Bloom
	bloom.SetBytes(b)
	return bloom
}

func (b *Bloom) SetBytes(d []byte) {
	if len(b) < len(d) {
		panic("bloom bytes too big")
	}
	copy(b[BloomByteLength-len(d):], d)
}

// Add incorporates the given data into the bloom filter.
func (b *Bloom) Add(d []byte) {
	b.add(d, make([]byte, 6))
}

func (b *Bloom) add(d []byte, buf []byte) {
	i1, v1, i2, v2, i3, v3 := bloomValues(d, buf)
	b[i1] |= v1
	b[i2] |= v2
	b[i3] |= v3
}

// Test checks whether the given topic is (possibly) contained in the bloom
// filter. False positives are expected; false negatives are not.
func (b Bloom) Test(topic []byte) bool {
	i1, v1, i2, v2, i3, v3 := bloomValues(topic, make([]byte, 6))
	return v1 == v1&b[i1] && v2 == v2&b[i2] && v3 == v3&b[i3]
}

func bloomValues(data []byte, hashbuf []byte) (uint, byte, uint, byte, uint, byte) {
	sha := crypto.NewKeccakState()
	sha.Reset()
	sha.Write(data)
	sha.Read(hashbuf)

	v1 := byte(1 << (hashbuf[1] & 0x7))
	v2 := byte(1 << (hashbuf[3] & 0x7))
	v3 := byte(1 << (hashbuf[5] & 0x7))

	i1 := BloomByteLength - uint((binaryBE(hashbuf[0:2]))&0x7ff)/8 - 1
	i2 := BloomByteLength - uint((binaryBE(hashbuf[2:4]))&0x7ff)/8 - 1
	i3 := BloomByteLength - uint((binaryBE(hashbuf[4:6]))&0x7ff)/8 - 1

	return i1, v1, i2, v2, i3, v3
}

func binaryBE(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

// CreateBloom derives the log bloom for a single receipt's logs.
func CreateBloom(logs []*Log) Bloom {
	var (
		bin Bloom
		buf = make([]byte, 6)
	)
	for _, log := range logs {
		bin.add(log.Address.Bytes(), buf)
		for _, topic := range log.Topics {
			bin.add(common.CopyBytes(topic.Bytes()), buf)
		}
	}
	return bin
}

// MergeBloom ORs src's logs into an accumulating block-level bloom.
func MergeBloom(dst *Bloom, receiptLogs []*Log) {
	add := CreateBloom(receiptLogs)
	for i := range dst {
		dst[i] |= add[i]
	}
}
