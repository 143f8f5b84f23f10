// Package input injects physical mouse actions.
package input

import "github.com/teranos/mousemacro/macro"

// Mouse moves the pointer and presses/releases buttons.
type Mouse interface {
	Move(p macro.Point) error
	Press(b macro.Button) error
	Release(b macro.Button) error
}

// buttonName is the robotgo name of b.
func buttonName(b macro.Button) string {
	switch b {
	case macro.ButtonMiddle:
		return "center"
	case macro.ButtonRight:
		return "right"
	default:
		return "left"
	}
}
