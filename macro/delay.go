package macro

import (
	"fmt"
	"math"
	"time"

	"github.com/teranos/mousemacro/errors"
)

// DefaultBaseInterval is the wait between ticks when the caller gives none.
const DefaultBaseInterval = 300 * time.Millisecond

// DelayPolicy computes the wait after each executed tick:
// Base + a uniform jitter in [MinJitter, MaxJitter], both bounds included.
type DelayPolicy struct {
	Base      time.Duration
	MinJitter time.Duration
	MaxJitter time.Duration
}

// NewDelayPolicy validates and builds a DelayPolicy.
func NewDelayPolicy(base, minJitter, maxJitter time.Duration) (DelayPolicy, error) {
	if base < 0 {
		return DelayPolicy{}, errors.NewInvalidArgumentError("base interval must be >= 0, got %s", base)
	}
	if minJitter < 0 || maxJitter < 0 {
		return DelayPolicy{}, errors.NewInvalidArgumentError("random delay bounds must be >= 0, got min=%s max=%s", minJitter, maxJitter)
	}
	if minJitter > maxJitter {
		return DelayPolicy{}, errors.NewInvalidArgumentError("min random delay %s is greater than max %s", minJitter, maxJitter)
	}
	// Base+MaxJitter must stay strictly below the largest duration so that the
	// sampled span (MaxJitter-MinJitter+1) can never overflow either.
	if maxJitter >= time.Duration(math.MaxInt64)-base {
		return DelayPolicy{}, errors.NewInvalidArgumentError("delay %s + %s overflows", base, maxJitter)
	}
	return DelayPolicy{Base: base, MinJitter: minJitter, MaxJitter: maxJitter}, nil
}

// FixedDelay is a policy without jitter.
func FixedDelay(d time.Duration) (DelayPolicy, error) {
	return NewDelayPolicy(d, 0, 0)
}

// Resolve returns the next delay. r is not consulted when MinJitter == MaxJitter.
func (p DelayPolicy) Resolve(r Random) time.Duration {
	span := p.MaxJitter - p.MinJitter
	if span == 0 {
		return p.Base + p.MinJitter
	}
	return p.Base + p.MinJitter + time.Duration(r.Int64N(int64(span)+1))
}

// Bounds returns the smallest and largest value Resolve can produce.
func (p DelayPolicy) Bounds() (time.Duration, time.Duration) {
	return p.Base + p.MinJitter, p.Base + p.MaxJitter
}

func (p DelayPolicy) String() string {
	if p.MinJitter == p.MaxJitter {
		return (p.Base + p.MinJitter).String()
	}
	return fmt.Sprintf("%s+[%s,%s]", p.Base, p.MinJitter, p.MaxJitter)
}
