package testing

import "sync"

// ScriptedRandom returns its values in order (cycling), clamped into [0, n).
// It satisfies macro.Random and counts how often it was consulted.
type ScriptedRandom struct {
	mu     sync.Mutex
	values []int64
	calls  int
}

// NewScriptedRandom returns a source yielding values in order.
// With no values every draw returns 0.
func NewScriptedRandom(values ...int64) *ScriptedRandom {
	return &ScriptedRandom{values: values}
}

// MaxRandom always draws the largest legal value (n-1).
func MaxRandom() *ScriptedRandom {
	return NewScriptedRandom(1<<62 - 1)
}

func (r *ScriptedRandom) IntN(n int) int {
	return int(r.Int64N(int64(n)))
}

func (r *ScriptedRandom) Int64N(n int64) int64 {
	if n <= 0 {
		panic("invalid argument to Int64N")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var v int64
	if len(r.values) > 0 {
		v = r.values[r.calls%len(r.values)]
	}
	r.calls++

	switch {
	case v < 0:
		return 0
	case v >= n:
		return n - 1
	}
	return v
}

// Calls returns how many draws were made.
func (r *ScriptedRandom) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
