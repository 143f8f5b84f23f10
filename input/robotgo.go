//go:build native

package input

import (
	"github.com/go-vgo/robotgo"

	"github.com/teranos/mousemacro/errors"
	"github.com/teranos/mousemacro/macro"
)

// RobotgoMouse injects events through github.com/go-vgo/robotgo.
type RobotgoMouse struct{}

// NewMouse returns the native mouse for this build.
func NewMouse() (Mouse, error) {
	return RobotgoMouse{}, nil
}

func (RobotgoMouse) Move(p macro.Point) error {
	robotgo.Move(p.X, p.Y)
	return nil
}

func (RobotgoMouse) Press(b macro.Button) error {
	return errors.Wrap(robotgo.Toggle(buttonName(b)), "robotgo press")
}

func (RobotgoMouse) Release(b macro.Button) error {
	return errors.Wrap(robotgo.Toggle(buttonName(b), "up"), "robotgo release")
}
