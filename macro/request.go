package macro

import (
	"github.com/teranos/mousemacro/errors"
)

// Request is the full configuration of one run. It is built once per Start.
type Request struct {
	Point       MacroPoint
	Action      ClickAction
	Position    PositionPolicy
	Delay       DelayPolicy
	Schedule    Schedule
	Random      Random
	RepeatCount int // 0 = until stopped
}

// NewRequest validates and builds a Request.
// A nil position falls back to the point's own policy and a nil schedule to Always.
func NewRequest(point MacroPoint, action ClickAction, position PositionPolicy, delay DelayPolicy, schedule Schedule, random Random, repeatCount int) (Request, error) {
	req := Request{
		Point:       point,
		Action:      action,
		Position:    position,
		Delay:       delay,
		Schedule:    schedule,
		Random:      random,
		RepeatCount: repeatCount,
	}
	if req.Position == nil {
		req.Position = point.Position
	}
	if req.Schedule == nil {
		req.Schedule = Always{}
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Validate re-checks every invariant, so hand-assembled requests are held to
// the same rules as ones built by the constructors.
func (r Request) Validate() error {
	if r.Point.Name == "" {
		return errors.NewInvalidArgumentError("macro point name must not be blank")
	}
	if _, err := NewClickAction(r.Action.Button, r.Action.ClickCount, r.Action.Hold); err != nil {
		return errors.Wrap(err, "click action")
	}
	if r.Position == nil {
		return errors.NewInvalidArgumentError("position policy is required")
	}
	if area, ok := r.Position.(RandomArea); ok {
		if _, err := NewRandomArea(area.HalfWidth, area.HalfHeight); err != nil {
			return errors.Wrap(err, "position policy")
		}
	}
	if _, err := NewDelayPolicy(r.Delay.Base, r.Delay.MinJitter, r.Delay.MaxJitter); err != nil {
		return errors.Wrap(err, "delay policy")
	}
	if r.Schedule == nil {
		return errors.NewInvalidArgumentError("schedule is required")
	}
	if w, ok := r.Schedule.(Window); ok {
		if _, err := NewTimeRange(w.Range.Start, w.Range.End); err != nil {
			return errors.Wrap(err, "schedule")
		}
	}
	if r.Random == nil {
		return errors.NewInvalidArgumentError("random source is required")
	}
	if r.RepeatCount < 0 {
		return errors.NewInvalidArgumentError("repeat count must be >= 0, got %d", r.RepeatCount)
	}
	return nil
}

// Unbounded reports whether the run continues until stopped.
func (r Request) Unbounded() bool {
	return r.RepeatCount == 0
}
