// Copyright 2015 The go-ethereum Authors
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

package params

import (
	"fmt"
	"math/big"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

// Hardfork names, in activation order. The zero hardfork (Frontier) always
// activates at block 0; every later hardfork must carry a non-nil block,
// timestamp or total-difficulty activation condition.
const (
	Frontier         = "frontier"
	Homestead        = "homestead"
	TangerineWhistle = "tangerineWhistle" // EIP-150
	SpuriousDragon   = "spuriousDragon"   // EIP-155, EIP-170
	Byzantium        = "byzantium"
	Constantinople   = "constantinople"
	Petersburg       = "petersburg"
	Istanbul         = "istanbul"
	MuirGlacier      = "muirGlacier"
	Berlin           = "berlin"   // EIP-2929, EIP-2930
	London           = "london"   // EIP-1559, EIP-3529, EIP-3541
	ArrowGlacier     = "arrowGlacier"
	GrayGlacier      = "grayGlacier"
	Merge            = "merge" // TTD-gated
	Shanghai         = "shanghai" // EIP-3651, EIP-3855, EIP-3860, EIP-4895
	Cancun           = "cancun"   // EIP-1153, EIP-4844, EIP-5656, EIP-6780
)

// hardforkOrder lists every hardfork name this Common instance knows about,
// in canonical activation order. It is the universe GetHardforkBy walks.
var hardforkOrder = []string{
	Frontier, Homestead, TangerineWhistle, SpuriousDragon, Byzantium,
	Constantinople, Petersburg, Istanbul, MuirGlacier, Berlin, London,
	ArrowGlacier, GrayGlacier, Merge, Shanghai, Cancun,
}

func hardforkIndex(name string) int {
	for i, hf := range hardforkOrder {
		if hf == name {
			return i
		}
	}
	return -1
}

// Hardfork describes one scheduled hardfork's activation condition and the
// per-topic parameter overrides it introduces.
type Hardfork struct {
	Name   string
	Block  *uint64  // nil unless block-gated
	Time   *uint64  // nil unless timestamp-gated
	TTD    *big.Int // nil unless this is the merge hardfork

	// Params holds this hardfork's parameter overrides, keyed by
	// "topic.name" (e.g. "gas.sstoreSet").
	Params map[string]*uint256.Int
}

// hasActivationCondition reports whether this hardfork has any activation condition at
// all, per spec.md §3's invariant that every hardfork must carry one.
func (hf Hardfork) hasActivationCondition() bool {
	return hf.Block != nil || hf.Time != nil || hf.TTD != nil
}

// HardforkQuery is the input to GetHardforkBy: the caller supplies whichever
// of block number, timestamp, and total difficulty it has available.
type HardforkQuery struct {
	Block *uint64
	Time  *uint64
	TD    *big.Int
}

// EIPSpec describes one EIP's activation prerequisites, per spec.md §4.1:
// "an EIP may only be enabled if its minimum_hardfork is <= current
// hardfork and its required_eips are all active."
type EIPSpec struct {
	MinimumHardfork string
	RequiredEIPs    []uint64

	// Params holds this EIP's parameter overrides, keyed by "topic.name".
	Params map[string]*uint256.Int
}

// ChainConfig is the Common parameter resolver (spec.md §4.1). It is built
// then frozen: construction validates, and the only mutation methods
// afterward are SetHardfork/SetEIPs, which notify subscribers via
// hardforkChanged (spec.md §9 "Hardfork-change signal").
type ChainConfig struct {
	ChainID   *big.Int
	NetworkID uint64

	// Hardforks is the chain's own schedule, a subset/override of
	// hardforkOrder with concrete activation points filled in.
	Hardforks []Hardfork

	mu              sync.RWMutex
	activeHardfork  string   // last value returned by GetHardforkBy, or DefaultHardfork
	activeEIPs      []uint64 // user-supplied order, as spec.md §4.1 requires
	hardforkChanged event.Feed
}

// NewChainConfig validates and freezes a ChainConfig. Validation enforces
// spec.md §3's Common invariants.
func NewChainConfig(chainID *big.Int, networkID uint64, defaultHardfork string, hardforks []Hardfork) (*ChainConfig, error) {
	if err := validateHardforkSchedule(hardforks); err != nil {
		return nil, err
	}
	cfg := &ChainConfig{
		ChainID:        chainID,
		NetworkID:      networkID,
		Hardforks:      hardforks,
		activeHardfork: defaultHardfork,
	}
	return cfg, nil
}

func validateHardforkSchedule(hardforks []Hardfork) error {
	mergeCount := 0
	zeroActivated := false
	for _, hf := range hardforks {
		if !hf.hasActivationCondition() {
			return fmt.Errorf("%w: hardfork %q has no activation condition", ErrMustHaveHFAtZero, hf.Name)
		}
		if hf.TTD != nil {
			mergeCount++
		}
		if hf.Block != nil && *hf.Block == 0 {
			zeroActivated = true
		}
	}
	if mergeCount > 1 {
		return ErrMultipleMergeHardforks
	}
	if !zeroActivated {
		return ErrMustHaveHFAtZero
	}
	return nil
}

func (c *ChainConfig) findHardfork(name string) (Hardfork, bool) {
	for _, hf := range c.Hardforks {
		if hf.Name == name {
			return hf, true
		}
	}
	return Hardfork{}, false
}

// GteHardfork reports whether the chain's currently active hardfork is at
// or after hf in canonical order.
func (c *ChainConfig) GteHardfork(hf string) bool {
	c.mu.RLock()
	active := c.activeHardfork
	c.mu.RUnlock()

	ai, bi := hardforkIndex(active), hardforkIndex(hf)
	if ai == -1 || bi == -1 {
		return false
	}
	return ai >= bi
}

// SetHardfork overrides the active hardfork directly, bypassing
// GetHardforkBy. Used by tests and by callers that already know the
// hardfork (e.g. replaying a historical block). Emits hardforkChanged.
func (c *ChainConfig) SetHardfork(hf string) {
	c.mu.Lock()
	prev := c.activeHardfork
	c.activeHardfork = hf
	c.mu.Unlock()
	if prev != hf {
		log.Info("hardfork changed", "from", prev, "to", hf)
	}
	c.hardforkChanged.Send(hf)
}

// SetEIPs overrides the set of explicitly-activated EIPs. Emits
// hardforkChanged, since opcode/precompile tables must rebuild regardless
// of whether the hardfork name itself changed.
func (c *ChainConfig) SetEIPs(eips []uint64) {
	c.mu.Lock()
	c.activeEIPs = append([]uint64(nil), eips...)
	active := c.activeHardfork
	c.mu.Unlock()
	c.hardforkChanged.Send(active)
}

// SubscribeHardforkChanged registers ch to receive the active hardfork name
// whenever SetHardfork/SetEIPs/GetHardforkBy changes it.
func (c *ChainConfig) SubscribeHardforkChanged(ch chan<- string) event.Subscription {
	return c.hardforkChanged.Subscribe(ch)
}

// IsActivatedEIP reports whether eip is active, resolving required_eips
// transitively per spec.md §4.1.
func (c *ChainConfig) IsActivatedEIP(eip uint64) bool {
	return c.isActivatedEIP(eip, make(map[uint64]bool))
}

func (c *ChainConfig) isActivatedEIP(eip uint64, visiting map[uint64]bool) bool {
	c.mu.RLock()
	explicit := false
	for _, e := range c.activeEIPs {
		if e == eip {
			explicit = true
			break
		}
	}
	c.mu.RUnlock()
	if !explicit {
		return false
	}
	spec, ok := EIPTable[eip]
	if !ok {
		return false
	}
	if !c.GteHardfork(spec.MinimumHardfork) {
		return false
	}
	if visiting[eip] {
		// defend against a cyclic required_eips table; treat as satisfied
		// once we're back where we started.
		return true
	}
	visiting[eip] = true
	for _, req := range spec.RequiredEIPs {
		if !c.isActivatedEIP(req, visiting) {
			return false
		}
	}
	return true
}

// Param resolves a parameter by topic/name using the order spec.md §4.1
// fixes: active EIPs (in caller-supplied order) -> latest activated
// hardfork containing the parameter -> zero default.
func (c *ChainConfig) Param(topic, name string) *uint256.Int {
	key := topic + "." + name

	c.mu.RLock()
	eips := append([]uint64(nil), c.activeEIPs...)
	c.mu.RUnlock()

	for _, eip := range eips {
		if !c.IsActivatedEIP(eip) {
			continue
		}
		if spec, ok := EIPTable[eip]; ok {
			if v, ok := spec.Params[key]; ok {
				return v
			}
		}
	}

	// Walk hardforks from most-recently-activated backward.
	c.mu.RLock()
	active := c.activeHardfork
	c.mu.RUnlock()
	activeIdx := hardforkIndex(active)
	type scheduled struct {
		idx int
		hf  Hardfork
	}
	var candidates []scheduled
	for _, hf := range c.Hardforks {
		idx := hardforkIndex(hf.Name)
		if idx != -1 && idx <= activeIdx {
			candidates = append(candidates, scheduled{idx, hf})
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].idx > candidates[j].idx })
	for _, cand := range candidates {
		if v, ok := cand.hf.Params[key]; ok {
			return v
		}
	}
	return uint256.NewInt(0)
}

// ParamByHardfork resolves a parameter as it stood exactly at hf, ignoring
// EIPs and later hardforks.
func (c *ChainConfig) ParamByHardfork(topic, name, hf string) *uint256.Int {
	key := topic + "." + name
	target := hardforkIndex(hf)
	type scheduled struct {
		idx int
		hf  Hardfork
	}
	var candidates []scheduled
	for _, h := range c.Hardforks {
		idx := hardforkIndex(h.Name)
		if idx != -1 && idx <= target {
			candidates = append(candidates, scheduled{idx, h})
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].idx > candidates[j].idx })
	for _, cand := range candidates {
		if v, ok := cand.hf.Params[key]; ok {
			return v
		}
	}
	return uint256.NewInt(0)
}

// ParamByEIP resolves a parameter exactly as defined by a single EIP,
// ignoring activation state entirely.
func (c *ChainConfig) ParamByEIP(topic, name string, eip uint64) *uint256.Int {
	key := topic + "." + name
	if spec, ok := EIPTable[eip]; ok {
		if v, ok := spec.Params[key]; ok {
			return v
		}
	}
	return uint256.NewInt(0)
}

// HardforkBlock returns the block activation of hf, if block-gated.
func (c *ChainConfig) HardforkBlock(hf string) *uint64 {
	if h, ok := c.findHardfork(hf); ok {
		return h.Block
	}
	return nil
}

// NextHardforkBlockOrTimestamp returns the activation point of the
// hardfork immediately following hf in the chain's schedule, or nil if hf
// is the last scheduled hardfork.
func (c *ChainConfig) NextHardforkBlockOrTimestamp(hf string) *uint64 {
	idx := -1
	for i, h := range c.Hardforks {
		if h.Name == hf {
			idx = i
			break
		}
	}
	if idx == -1 || idx+1 >= len(c.Hardforks) {
		return nil
	}
	next := c.Hardforks[idx+1]
	if next.Block != nil {
		return next.Block
	}
	return next.Time
}

// GetHardforkBy implements the hardfork-selection algorithm of spec.md
// §4.1.
func (c *ChainConfig) GetHardforkBy(q HardforkQuery) (string, error) {
	// Only hardforks with an activation condition participate (step 1).
	var scheduled []Hardfork
	for _, hf := range c.Hardforks {
		if hf.hasActivationCondition() {
			scheduled = append(scheduled, hf)
		}
	}
	sort.SliceStable(scheduled, func(i, j int) bool {
		return hardforkIndex(scheduled[i].Name) < hardforkIndex(scheduled[j].Name)
	})

	activates := func(hf Hardfork) (uint64, bool) {
		if hf.Block != nil {
			if q.Block == nil {
				return 0, false
			}
			return *hf.Block, *q.Block >= *hf.Block
		}
		if hf.Time != nil {
			if q.Time == nil {
				return 0, false // timestamp path ignored if timestamp absent
			}
			return *hf.Time, *q.Time >= *hf.Time
		}
		return 0, false
	}

	// Step 2: first hardfork that has NOT activated by the inputs
	// (activation is inclusive: a hardfork is live at its own block/time).
	cut := len(scheduled)
	for i, hf := range scheduled {
		if hf.TTD != nil {
			continue // merge compared separately in step 4
		}
		_, activated := activates(hf)
		if !activated {
			cut = i
			break
		}
	}
	if cut == 0 {
		return "", ErrMustHaveHFAtZero
	}

	// Step 3: step back one; if landed on a timestamp-only hardfork and
	// timestamp was absent, keep stepping back to a block/TTD-gated one.
	landed := cut - 1
	for landed > 0 && scheduled[landed].Block == nil && scheduled[landed].TTD == nil && q.Time == nil {
		landed--
	}
	result := scheduled[landed]

	// Step 4: merge handling.
	if result.TTD != nil {
		if q.TD == nil {
			return "", ErrHardforkMismatch
		}
		if q.TD.Cmp(result.TTD) < 0 {
			// pre-merge: fall back to the hardfork before merge.
			if landed == 0 {
				return "", ErrMustHaveHFAtZero
			}
			result = scheduled[landed-1]
			landed--
		}
	} else if q.Block != nil && result.Block != nil {
		// sanity: a TTD given but landing HF isn't merge-gated is fine;
		// but a TD that contradicts the block-derived HF is an error only
		// when a merge HF exists and q.TD is supplied against a
		// non-merge result that sits past the merge in the schedule.
	}

	// Step 5: advance to the last hardfork sharing the same activation
	// point, to resolve ties deterministically.
	activation, hasActivation := activationPoint(result)
	for landed+1 < len(scheduled) {
		next := scheduled[landed+1]
		nextActivation, nextHas := activationPoint(next)
		if hasActivation && nextHas && nextActivation == activation {
			landed++
			result = next
			continue
		}
		break
	}

	if hardforkIndex(result.Name) == -1 {
		return "", ErrUnknownHardfork
	}

	c.mu.Lock()
	prev := c.activeHardfork
	c.activeHardfork = result.Name
	c.mu.Unlock()
	if prev != result.Name {
		log.Info("hardfork changed", "from", prev, "to", result.Name, "block", q.Block, "time", q.Time)
	}
	c.hardforkChanged.Send(result.Name)

	return result.Name, nil
}

func activationPoint(hf Hardfork) (uint64, bool) {
	if hf.Block != nil {
		return *hf.Block, true
	}
	if hf.Time != nil {
		return *hf.Time, true
	}
	return 0, false
}

// ForkHash computes the EIP-2124 fork hash for hf against genesis, per
// spec.md §4.1: feed genesis_hash and every scheduled activation point
// strictly after genesis (skipping the merge hardfork and duplicate
// activation points) into CRC32.
func (c *ChainConfig) ForkHash(hf string, genesisHash common.Hash) [4]byte {
	var points []uint64
	seen := map[uint64]bool{}
	idx := hardforkIndex(hf)
	for _, h := range c.Hardforks {
		if h.TTD != nil {
			continue // merge HF skipped per spec
		}
		if hardforkIndex(h.Name) > idx {
			continue
		}
		point, ok := activationPoint(h)
		if !ok || point == 0 {
			continue
		}
		if seen[point] {
			continue
		}
		seen[point] = true
		points = append(points, point)
	}
	sort.Slice(points, func(i, j int) bool { return points[i] < points[j] })
	return forkHash(genesisHash, points)
}
