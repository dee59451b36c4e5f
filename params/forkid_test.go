package params

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

// TestForkHashStability encodes spec.md §8's "fork-hash stability"
// property: fork_hash(HF, genesis) must not change when future hardforks
// are appended to the schedule.
func TestForkHashStability(t *testing.T) {
	genesis := common.HexToHash("0x1234")

	base, err := NewChainConfig(big.NewInt(1), 1, Berlin, []Hardfork{
		{Name: Frontier, Block: u64ptr(0)},
		{Name: Berlin, Block: u64ptr(100)},
	})
	if err != nil {
		t.Fatal(err)
	}
	before := base.ForkHash(Berlin, genesis)

	withFuture, err := NewChainConfig(big.NewInt(1), 1, Berlin, []Hardfork{
		{Name: Frontier, Block: u64ptr(0)},
		{Name: Berlin, Block: u64ptr(100)},
		{Name: London, Block: u64ptr(200)},
	})
	if err != nil {
		t.Fatal(err)
	}
	after := withFuture.ForkHash(Berlin, genesis)

	if before != after {
		t.Errorf("fork hash changed when a future hardfork was appended: %x != %x", before, after)
	}
}

func TestForkHashSkipsMergeAndDuplicateActivations(t *testing.T) {
	genesis := common.HexToHash("0xabcd")

	withMerge, err := NewChainConfig(big.NewInt(1), 1, Shanghai, []Hardfork{
		{Name: Frontier, Block: u64ptr(0)},
		{Name: Berlin, Block: u64ptr(100)},
		{Name: Merge, TTD: big.NewInt(1000)},
		{Name: Shanghai, Time: u64ptr(500)},
	})
	if err != nil {
		t.Fatal(err)
	}

	withoutMergeEntry, err := NewChainConfig(big.NewInt(1), 1, Shanghai, []Hardfork{
		{Name: Frontier, Block: u64ptr(0)},
		{Name: Berlin, Block: u64ptr(100)},
		{Name: Shanghai, Time: u64ptr(500)},
	})
	if err != nil {
		t.Fatal(err)
	}

	if withMerge.ForkHash(Shanghai, genesis) != withoutMergeEntry.ForkHash(Shanghai, genesis) {
		t.Error("merge hardfork activation should not contribute to fork hash")
	}
}
