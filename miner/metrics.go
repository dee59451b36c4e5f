package miner

import "github.com/ethereum/go-ethereum/metrics"

// Assembler lifecycle metrics, named after the teacher's own
// "miner/<concern>/<stat>" registered-metric convention.
var (
	buildTxsIncludedCounter = metrics.NewRegisteredCounter("miner/transactions/included", nil)
	buildTxsDroppedCounter  = metrics.NewRegisteredCounter("miner/transactions/dropped", nil)
	buildDurationTimer      = metrics.NewRegisteredTimer("miner/build/elapsedtime", nil)
)
