package macro

import (
	"strconv"
	"strings"
	"time"

	"github.com/teranos/mousemacro/errors"
)

// ParseDelayPolicy builds a DelayPolicy from free-form millisecond inputs.
//
//   - blank base means DefaultBaseInterval
//   - blank min and max mean no jitter
//   - min without max means max = min
//   - negative or non-numeric values and min > max are rejected
func ParseDelayPolicy(baseRaw, minRaw, maxRaw string) (DelayPolicy, error) {
	base := DefaultBaseInterval
	if s := strings.TrimSpace(baseRaw); s != "" {
		ms, err := parseMillis("base interval", s)
		if err != nil {
			return DelayPolicy{}, err
		}
		base = ms
	}

	var minJitter, maxJitter time.Duration
	minSet, maxSet := false, false

	if s := strings.TrimSpace(minRaw); s != "" {
		ms, err := parseMillis("random min", s)
		if err != nil {
			return DelayPolicy{}, err
		}
		minJitter, minSet = ms, true
	}
	if s := strings.TrimSpace(maxRaw); s != "" {
		ms, err := parseMillis("random max", s)
		if err != nil {
			return DelayPolicy{}, err
		}
		maxJitter, maxSet = ms, true
	}

	if minSet && !maxSet {
		maxJitter = minJitter
	}

	if minJitter > maxJitter {
		return DelayPolicy{}, errors.WithHint(
			errors.NewInvalidArgumentError("random min (%dms) must not exceed random max (%dms)", minJitter.Milliseconds(), maxJitter.Milliseconds()),
			"swap the two values or leave max blank")
	}

	return NewDelayPolicy(base, minJitter, maxJitter)
}

// ParseRepeatCount parses a repeat count; blank means 0 (until stopped).
func ParseRepeatCount(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.NewInvalidArgumentError("repeat count must be a whole number, got %q", s)
	}
	if n < 0 {
		return 0, errors.NewInvalidArgumentError("repeat count must be >= 0, got %d", n)
	}
	return n, nil
}

func parseMillis(label, s string) (time.Duration, error) {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ms < 0 {
		return 0, errors.NewInvalidArgumentError("%s must be a number >= 0 (milliseconds), got %q", label, s)
	}
	if ms > int64(time.Duration(1<<62)/time.Millisecond) {
		return 0, errors.NewInvalidArgumentError("%s is too large: %dms", label, ms)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
