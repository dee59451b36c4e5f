package miner

import (
	"math/big"

	"github.com/evmforge/execution-core/core/types"
	"github.com/evmforge/execution-core/params"
)

// calcBaseFee computes the EIP-1559 base fee for a block built on top of
// parent, the formula go-ethereum's consensus/misc/eip1559.CalcBaseFee
// implements — reimplemented against this module's own *types.Header
// rather than imported, since the upstream helper is typed against
// go-ethereum's own header struct.
func calcBaseFee(parent *types.Header) *big.Int {
	if parent.BaseFee == nil {
		return big.NewInt(params.InitialBaseFee)
	}

	parentGasTarget := parent.GasLimit / params.DefaultElasticityMultiplier
	if parent.GasUsed == parentGasTarget {
		return new(big.Int).Set(parent.BaseFee)
	}

	denom := big.NewInt(int64(params.DefaultBaseFeeChangeDenominator))
	if parent.GasUsed > parentGasTarget {
		gasUsedDelta := parent.GasUsed - parentGasTarget
		x := new(big.Int).Mul(parent.BaseFee, big.NewInt(int64(gasUsedDelta)))
		y := x.Div(x, big.NewInt(int64(parentGasTarget)))
		baseFeeDelta := x.Div(y, denom)
		if baseFeeDelta.Sign() < 1 {
			baseFeeDelta = big.NewInt(1)
		}
		return x.Add(parent.BaseFee, baseFeeDelta)
	}

	gasUsedDelta := parentGasTarget - parent.GasUsed
	x := new(big.Int).Mul(parent.BaseFee, big.NewInt(int64(gasUsedDelta)))
	y := x.Div(x, big.NewInt(int64(parentGasTarget)))
	baseFeeDelta := y.Div(y, denom)
	next := new(big.Int).Sub(parent.BaseFee, baseFeeDelta)
	if next.Sign() < 0 {
		return big.NewInt(0)
	}
	return next
}

// calcExcessBlobGas computes the post-Cancun excess blob gas carried into
// a child header, given the parent's excess and the blob gas it actually
// used (EIP-4844).
func calcExcessBlobGas(parentExcess, parentBlobGasUsed uint64) uint64 {
	excess := parentExcess + parentBlobGasUsed
	if excess < params.TargetBlobGasPerBlock {
		return 0
	}
	return excess - params.TargetBlobGasPerBlock
}

// calcBlobFee converts excess blob gas into a per-unit blob base fee via
// the fake-exponential approximation EIP-4844 specifies.
func calcBlobFee(excessBlobGas uint64) *big.Int {
	return fakeExponential(big.NewInt(params.BlobTxMinBlobGasprice), new(big.Int).SetUint64(excessBlobGas), big.NewInt(params.BlobBaseFeeUpdateFraction))
}

func fakeExponential(factor, numerator, denominator *big.Int) *big.Int {
	output := new(big.Int)
	numeratorAccum := new(big.Int).Mul(factor, denominator)
	for i := 1; numeratorAccum.Sign() > 0; i++ {
		output.Add(output, numeratorAccum)
		numeratorAccum.Mul(numeratorAccum, numerator)
		numeratorAccum.Div(numeratorAccum, denominator)
		numeratorAccum.Div(numeratorAccum, big.NewInt(int64(i)))
	}
	return output.Div(output, denominator)
}
