package params

import "errors"

// Common resolver errors (spec.md §7 "Common" taxonomy).
var (
	ErrUnknownHardfork        = errors.New("unknown hardfork")
	ErrHardforkMismatch       = errors.New("block-derived hardfork inconsistent with supplied total difficulty")
	ErrMultipleMergeHardforks = errors.New("more than one hardfork carries a total-difficulty activation")
	ErrMustHaveHFAtZero       = errors.New("no hardfork is activated at block zero")
	ErrUnknownEIP             = errors.New("unknown EIP")
	ErrEIPPrerequisiteMissing = errors.New("EIP activated without its required prerequisite")
)
