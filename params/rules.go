package params

import "math/big"

// Rules is a snapshot of the hardfork/EIP booleans that apply to one
// specific block, computed once up front so the EVM's hot path never has
// to re-walk the hardfork schedule. Grounded on core/vm/contracts_rollup.go's
// `rules.IsR0` gating pattern, generalized to the full EIP set of spec.md §1.
type Rules struct {
	ChainID *big.Int

	IsHomestead      bool
	IsEIP150         bool // Tangerine Whistle
	IsEIP155         bool // Spurious Dragon replay protection
	IsEIP158         bool // Spurious Dragon state clearing + EIP-170 codesize cap
	IsByzantium      bool
	IsConstantinople bool
	IsPetersburg     bool
	IsIstanbul       bool
	IsBerlin         bool // EIP-2929, EIP-2930
	IsLondon         bool // EIP-1559, EIP-3529, EIP-3541
	IsMerge          bool // EIP-4399
	IsShanghai       bool // EIP-3651, EIP-3855, EIP-3860, EIP-4895
	IsCancun         bool // EIP-1153, EIP-4844, EIP-5656, EIP-6780

	IsEIP1153 bool
	IsEIP2929 bool
	IsEIP2930 bool
	IsEIP3529 bool
	IsEIP3540 bool
	IsEIP3541 bool
	IsEIP3607 bool
	IsEIP3651 bool
	IsEIP3670 bool
	IsEIP3855 bool
	IsEIP3860 bool
	IsEIP4399 bool
	IsEIP4844 bool
	IsEIP4895 bool
	IsEIP5656 bool
	IsEIP6780 bool
}

// eipFlag is a little table-driven helper so Rules() below stays a flat
// list instead of twenty repeated IsActivatedEIP calls with gating logic
// duplicated at each call site.
type eipFlag struct {
	eip  uint64
	dest *bool
}

// Rules computes a Rules snapshot for the chain's currently active
// hardfork and EIP set.
func (c *ChainConfig) Rules() Rules {
	var r Rules
	r.ChainID = c.ChainID
	active := func(hf string) bool { return c.GteHardfork(hf) }

	r.IsHomestead = active(Homestead)
	r.IsEIP150 = active(TangerineWhistle)
	r.IsEIP155 = active(SpuriousDragon)
	r.IsEIP158 = active(SpuriousDragon)
	r.IsByzantium = active(Byzantium)
	r.IsConstantinople = active(Constantinople)
	r.IsPetersburg = active(Petersburg)
	r.IsIstanbul = active(Istanbul)
	r.IsBerlin = active(Berlin)
	r.IsLondon = active(London)
	r.IsMerge = active(Merge)
	r.IsShanghai = active(Shanghai)
	r.IsCancun = active(Cancun)

	flags := []eipFlag{
		{1153, &r.IsEIP1153}, {2929, &r.IsEIP2929}, {2930, &r.IsEIP2930},
		{3529, &r.IsEIP3529}, {3540, &r.IsEIP3540}, {3541, &r.IsEIP3541},
		{3607, &r.IsEIP3607}, {3651, &r.IsEIP3651}, {3670, &r.IsEIP3670},
		{3855, &r.IsEIP3855}, {3860, &r.IsEIP3860}, {4399, &r.IsEIP4399},
		{4844, &r.IsEIP4844}, {4895, &r.IsEIP4895}, {5656, &r.IsEIP5656},
		{6780, &r.IsEIP6780},
	}
	for _, f := range flags {
		*f.dest = c.IsActivatedEIP(f.eip)
	}

	// EIP clusters ship unconditionally with their hardfork, so a config
	// that didn't bother listing them explicitly via SetEIPs still gets
	// correct semantics.
	r.IsEIP2929 = r.IsEIP2929 || r.IsBerlin
	r.IsEIP2930 = r.IsEIP2930 || r.IsBerlin
	r.IsEIP3529 = r.IsEIP3529 || r.IsLondon
	r.IsEIP3541 = r.IsEIP3541 || r.IsLondon
	r.IsEIP3651 = r.IsEIP3651 || r.IsShanghai
	r.IsEIP3855 = r.IsEIP3855 || r.IsShanghai
	r.IsEIP3860 = r.IsEIP3860 || r.IsShanghai
	r.IsEIP4399 = r.IsEIP4399 || r.IsMerge
	r.IsEIP4895 = r.IsEIP4895 || r.IsShanghai
	r.IsEIP1153 = r.IsEIP1153 || r.IsCancun
	r.IsEIP4844 = r.IsEIP4844 || r.IsCancun
	r.IsEIP5656 = r.IsEIP5656 || r.IsCancun
	r.IsEIP6780 = r.IsEIP6780 || r.IsCancun

	return r
}
