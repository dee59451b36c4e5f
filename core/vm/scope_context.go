package vm

// ScopeContext groups the three pieces of state one instruction execution
// function needs: the stack and memory of the current frame, and the
// frame's Contract (code, gas meter, value, addresses).
type ScopeContext struct {
	Memory   *Memory
	Stack    *Stack
	Contract *Contract
}
