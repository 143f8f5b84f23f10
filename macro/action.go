package macro

import (
	"fmt"
	"strings"
	"time"

	"github.com/teranos/mousemacro/errors"
)

// Button identifies a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "LEFT"
	case ButtonMiddle:
		return "MIDDLE"
	case ButtonRight:
		return "RIGHT"
	default:
		return fmt.Sprintf("Button(%d)", int(b))
	}
}

// Valid reports whether b is one of the defined buttons.
func (b Button) Valid() bool {
	return b >= ButtonLeft && b <= ButtonRight
}

// ParseButton accepts left/middle/right in any case.
func ParseButton(s string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "":
		return ButtonLeft, nil
	case "middle", "center":
		return ButtonMiddle, nil
	case "right":
		return ButtonRight, nil
	default:
		return 0, errors.NewInvalidArgumentError("unknown mouse button %q (use left, middle or right)", s)
	}
}

// ClickAction is what happens at the resolved coordinate on each tick:
// ClickCount press/release pairs, or one press held for Hold.
type ClickAction struct {
	Button     Button
	ClickCount int
	Hold       time.Duration
}

// NewClickAction validates and builds a ClickAction.
// A hold is a single press of nonzero duration, so Hold > 0 requires ClickCount == 1.
func NewClickAction(button Button, clickCount int, hold time.Duration) (ClickAction, error) {
	if !button.Valid() {
		return ClickAction{}, errors.NewInvalidArgumentError("invalid button %s", button)
	}
	if clickCount < 1 {
		return ClickAction{}, errors.NewInvalidArgumentError("click count must be >= 1, got %d", clickCount)
	}
	if hold < 0 {
		return ClickAction{}, errors.NewInvalidArgumentError("hold must be >= 0, got %s", hold)
	}
	if hold > 0 && clickCount != 1 {
		return ClickAction{}, errors.NewInvalidArgumentError("hold of %s cannot be combined with %d clicks", hold, clickCount)
	}
	return ClickAction{Button: button, ClickCount: clickCount, Hold: hold}, nil
}

// IsHold reports whether the action is a press-and-hold.
func (a ClickAction) IsHold() bool {
	return a.Hold > 0
}

func (a ClickAction) String() string {
	if a.IsHold() {
		return fmt.Sprintf("%s hold %s", a.Button, a.Hold)
	}
	if a.ClickCount == 1 {
		return a.Button.String() + " click"
	}
	return fmt.Sprintf("%s x%d", a.Button, a.ClickCount)
}

// SingleLeft is one left click.
func SingleLeft() ClickAction {
	return ClickAction{Button: ButtonLeft, ClickCount: 1}
}

// DoubleLeft is a left double click.
func DoubleLeft() ClickAction {
	return ClickAction{Button: ButtonLeft, ClickCount: 2}
}

// RightClick is one right click.
func RightClick() ClickAction {
	return ClickAction{Button: ButtonRight, ClickCount: 1}
}

// Hold presses button for d. d must be positive.
func Hold(button Button, d time.Duration) (ClickAction, error) {
	if d <= 0 {
		return ClickAction{}, errors.NewInvalidArgumentError("hold duration must be > 0, got %s", d)
	}
	return NewClickAction(button, 1, d)
}
