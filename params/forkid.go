package params

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/ethereum/go-ethereum/common"
)

// forkHash computes the EIP-2124 fork hash: CRC32 over genesisHash followed
// by the big-endian 8-byte activation point of each entry in points, in
// order. CRC32 is a stdlib algorithm with no ecosystem replacement carried
// by the pack, so hash/crc32 is used directly here rather than a
// third-party checksum library.
func forkHash(genesisHash common.Hash, points []uint64) [4]byte {
	hasher := crc32.NewIEEE()
	hasher.Write(genesisHash[:])

	var buf [8]byte
	for _, p := range points {
		binary.BigEndian.PutUint64(buf[:], p)
		hasher.Write(buf[:])
	}

	var out [4]byte
	binary.BigEndian.PutUint32(out[:], hasher.Sum32())
	return out
}
