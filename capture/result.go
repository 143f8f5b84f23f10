// Package capture implements the single-shot "next external click" protocol
// used to pick a macro's base coordinate interactively.
package capture

import (
	"fmt"

	"github.com/teranos/mousemacro/macro"
)

// Kind tags a Result.
type Kind int

const (
	KindCaptured Kind = iota
	KindCancelled
	KindTimeout
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindCaptured:
		return "captured"
	case KindCancelled:
		return "cancelled"
	case KindTimeout:
		return "timeout"
	case KindFailed:
		return "failed"
	}
	return "unknown"
}

// Result is the outcome of one capture. Only Captured carries a point and
// only Failed carries a reason.
type Result struct {
	kind   Kind
	point  macro.Point
	reason string
}

func Captured(p macro.Point) Result { return Result{kind: KindCaptured, point: p} }
func Cancelled() Result            { return Result{kind: KindCancelled} }
func Timeout() Result              { return Result{kind: KindTimeout} }
func Failed(reason string) Result  { return Result{kind: KindFailed, reason: reason} }

func (r Result) Kind() Kind { return r.kind }

// Point returns the captured coordinate; ok is false for every other kind.
func (r Result) Point() (p macro.Point, ok bool) {
	return r.point, r.kind == KindCaptured
}

// Reason is the failure description, empty unless Kind is KindFailed.
func (r Result) Reason() string { return r.reason }

func (r Result) String() string {
	switch r.kind {
	case KindCaptured:
		return fmt.Sprintf("captured %s", r.point)
	case KindFailed:
		return fmt.Sprintf("failed: %s", r.reason)
	}
	return r.kind.String()
}
