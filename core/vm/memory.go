package vm

import (
	"math/big"

	"github.com/holiman/uint256"
)

// Memory is the EVM's linear, word-addressable, byte-resizable scratch
// space (spec.md §4.5). It grows lazily and never shrinks within a frame.
type Memory struct {
	store       []byte
	lastGasCost uint64
}

func NewMemory() *Memory {
	return &Memory{}
}

// Set writes value into the memory region [offset, offset+len(value)).
// Callers must Resize first.
func (m *Memory) Set(offset, size uint64, value []byte) {
	if size == 0 {
		return
	}
	if offset+size > uint64(len(m.store)) {
		panic("memory: write out of bounds")
	}
	copy(m.store[offset:offset+size], value)
}

// Set32 writes val, left-padded to 32 bytes, at offset.
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	if offset+32 > uint64(len(m.store)) {
		panic("memory: write out of bounds")
	}
	b32 := val.Bytes32()
	copy(m.store[offset:offset+32], b32[:])
}

// Resize grows the backing store to size bytes if it is currently
// smaller. size must already be rounded up to a word boundary by the
// caller's gas-cost computation (memoryGasCost in gas_table.go).
func (m *Memory) Resize(size uint64) {
	if uint64(len(m.store)) < size {
		m.store = append(m.store, make([]byte, size-uint64(len(m.store)))...)
	}
}

func (m *Memory) GetCopy(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	if int64(len(m.store)) > offset {
		cpy := make([]byte, size)
		copy(cpy, m.store[offset:offset+size])
		return cpy
	}
	return nil
}

func (m *Memory) GetPtr(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	return m.store[offset : offset+size]
}

// Copy implements EIP-5656 MCOPY: copy size bytes from src to dst within
// the same memory, correctly handling overlap in either direction.
func (m *Memory) Copy(dst, src, size uint64) {
	if size == 0 {
		return
	}
	copy(m.store[dst:dst+size], m.store[src:src+size])
}

func (m *Memory) Len() int { return len(m.store) }

func (m *Memory) Data() []byte { return m.store }

// calcMemSize32 returns the (size in bytes, overflow) pair for a memory
// access at off of length size, rejecting anything past a sane uint64 bound.
func calcMemSize32(off, length *uint256.Int) (uint64, bool) {
	if length.IsZero() {
		return 0, false
	}
	if !length.IsUint64() || !off.IsUint64() {
		return 0, true
	}
	s := new(big.Int).Add(off.ToBig(), length.ToBig())
	if !s.IsUint64() {
		return 0, true
	}
	return s.Uint64(), false
}
