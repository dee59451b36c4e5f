package params

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
)

func u64ptr(v uint64) *uint64 { return &v }

func testConfig(t *testing.T) *ChainConfig {
	t.Helper()
	cfg, err := NewChainConfig(big.NewInt(5), 5, Frontier, []Hardfork{
		{Name: Frontier, Block: u64ptr(0)},
		{Name: Berlin, Block: u64ptr(2)},
		{Name: London, Block: u64ptr(3)},
	})
	if err != nil {
		t.Fatalf("NewChainConfig: %v", err)
	}
	return cfg
}

// TestHardforkByBlock encodes spec.md §8 scenario 2.
func TestHardforkByBlock(t *testing.T) {
	cfg := testConfig(t)

	cases := []struct {
		block uint64
		want  string
	}{
		{0, Frontier},
		{2, Berlin},
		{3, London},
		{4, London},
	}
	for _, c := range cases {
		got, err := cfg.GetHardforkBy(HardforkQuery{Block: u64ptr(c.block)})
		if err != nil {
			t.Fatalf("block %d: %v", c.block, err)
		}
		if got != c.want {
			t.Errorf("block %d: got %q want %q", c.block, got, c.want)
		}
	}
}

// TestHardforkMonotonicity encodes the spec.md §8 universal property.
func TestHardforkMonotonicity(t *testing.T) {
	cfg := testConfig(t)
	var prevIdx int
	for b := uint64(0); b < 10; b++ {
		hf, err := cfg.GetHardforkBy(HardforkQuery{Block: u64ptr(b)})
		if err != nil {
			t.Fatalf("block %d: %v", b, err)
		}
		idx := hardforkIndex(hf)
		if idx < prevIdx {
			t.Fatalf("hardfork regressed at block %d: %q (idx %d) < previous idx %d", b, hf, idx, prevIdx)
		}
		prevIdx = idx
	}
}

func TestMissingHardforkAtZeroRejected(t *testing.T) {
	_, err := NewChainConfig(big.NewInt(1), 1, Frontier, []Hardfork{
		{Name: Berlin, Block: u64ptr(2)},
	})
	if err == nil {
		t.Fatal("expected error for schedule missing an HF at block zero")
	}
}

func TestMultipleMergeHardforksRejected(t *testing.T) {
	_, err := NewChainConfig(big.NewInt(1), 1, Frontier, []Hardfork{
		{Name: Frontier, Block: u64ptr(0)},
		{Name: Merge, TTD: big.NewInt(100)},
		{Name: Shanghai, TTD: big.NewInt(200)},
	})
	if err == nil {
		t.Fatal("expected MultipleMergeHardforks error")
	}
}

func TestParamResolutionOrder(t *testing.T) {
	cfg, err := NewChainConfig(big.NewInt(1), 1, London, []Hardfork{
		{Name: Frontier, Block: u64ptr(0), Params: map[string]*uint256.Int{
			"gas.sload": uint256.NewInt(50),
		}},
		{Name: Berlin, Block: u64ptr(2), Params: map[string]*uint256.Int{
			"gas.sload": uint256.NewInt(100),
		}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if got := cfg.Param("gas", "sload"); got.Uint64() != 100 {
		t.Errorf("expected latest-activated hardfork value 100, got %d", got.Uint64())
	}
	if got := cfg.Param("gas", "nonexistent"); got.Uint64() != 0 {
		t.Errorf("expected zero default, got %d", got.Uint64())
	}
}

func TestIsActivatedEIPRequiresPrerequisite(t *testing.T) {
	cfg := testConfig(t)
	cfg.SetHardfork(London)
	cfg.SetEIPs([]uint64{3529}) // requires 2929, not explicitly listed

	if cfg.IsActivatedEIP(3529) {
		t.Error("EIP-3529 should not be activated without its required EIP-2929")
	}

	cfg.SetEIPs([]uint64{3529, 2929})
	if !cfg.IsActivatedEIP(3529) {
		t.Error("EIP-3529 should be activated once EIP-2929 is also listed")
	}
}
