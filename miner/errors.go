package miner

import "errors"

var (
	errUnknownPayload            = errors.New("unknown payload id")
	errBlockInterruptedByNewHead = errors.New("new head arrived while building block")
	errBlockInterruptedByTimeout = errors.New("timeout while building block")
	errBlockInterruptedByResolve = errors.New("payload resolution while building block")
)
