// Package macro holds the immutable value types a macro run is built from:
// points, click actions and the position, delay and schedule policies that
// are resolved on every tick.
package macro

import (
	"fmt"
	"strings"

	"github.com/teranos/mousemacro/errors"
)

// Point is a screen coordinate in pixels.
// Negative values are legal on multi-monitor layouts.
type Point struct {
	X int `json:"x" mapstructure:"x" toml:"x" yaml:"x"`
	Y int `json:"y" mapstructure:"y" toml:"y" yaml:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// MacroPoint is a named target: the base coordinate plus the position policy
// used to derive each tick's resolved coordinate.
type MacroPoint struct {
	Name     string
	Base     Point
	Position PositionPolicy
}

// NewMacroPoint validates and builds a MacroPoint. A nil position policy means Exact.
func NewMacroPoint(name string, base Point, position PositionPolicy) (MacroPoint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return MacroPoint{}, errors.NewInvalidArgumentError("macro point name must not be blank")
	}
	if position == nil {
		position = Exact{}
	}
	return MacroPoint{Name: name, Base: base, Position: position}, nil
}
