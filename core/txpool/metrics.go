package txpool

import "github.com/ethereum/go-ethereum/metrics"

// Pool admission metrics, named after the "<pkg>/<concern>/<stat>"
// convention the teacher's miner package uses for its own registered
// counters and timers.
var (
	knownTxMeter       = metrics.NewRegisteredCounter("txpool/known", nil)
	invalidTxMeter     = metrics.NewRegisteredCounter("txpool/invalid", nil)
	underpricedTxMeter = metrics.NewRegisteredCounter("txpool/underpriced", nil)
	poolFullTxMeter    = metrics.NewRegisteredCounter("txpool/full", nil)
	validTxMeter       = metrics.NewRegisteredCounter("txpool/valid", nil)

	pendingGauge = metrics.NewRegisteredGauge("txpool/pending", nil)
	queuedGauge  = metrics.NewRegisteredGauge("txpool/queued", nil)

	pendingFetchTimer = metrics.NewRegisteredTimer("txpool/pending/fetch", nil)
)
