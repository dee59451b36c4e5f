package params

import "github.com/holiman/uint256"

// EIPTable is the catalogue of EIPs this resolver understands, each with
// its minimum hardfork and transitive prerequisites (spec.md §4.1).
// Params entries here are consulted by ChainConfig.Param/ParamByEIP before
// any hardfork-level default.
var EIPTable = map[uint64]EIPSpec{
	150:  {MinimumHardfork: TangerineWhistle},
	155:  {MinimumHardfork: SpuriousDragon},
	170:  {MinimumHardfork: SpuriousDragon},
	1153: {MinimumHardfork: Cancun},
	1559: {
		MinimumHardfork: London,
		Params: map[string]*uint256.Int{
			"fee.baseFeeChangeDenominator": uint256.NewInt(DefaultBaseFeeChangeDenominator),
			"fee.elasticityMultiplier":     uint256.NewInt(DefaultElasticityMultiplier),
		},
	},
	2929: {MinimumHardfork: Berlin},
	2930: {MinimumHardfork: Berlin},
	3529: {MinimumHardfork: London, RequiredEIPs: []uint64{2929}},
	3540: {MinimumHardfork: Cancun},
	3541: {MinimumHardfork: London},
	3607: {MinimumHardfork: London},
	3651: {MinimumHardfork: Shanghai, RequiredEIPs: []uint64{2929}},
	3670: {MinimumHardfork: Cancun, RequiredEIPs: []uint64{3540}},
	3855: {MinimumHardfork: Shanghai},
	3860: {MinimumHardfork: Shanghai},
	4399: {MinimumHardfork: Merge},
	4844: {MinimumHardfork: Cancun, RequiredEIPs: []uint64{1559}},
	4895: {MinimumHardfork: Shanghai},
	5656: {MinimumHardfork: Cancun},
	6780: {MinimumHardfork: Cancun},
}
