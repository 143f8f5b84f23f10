package macro

import (
	"fmt"
	"math"

	"github.com/teranos/mousemacro/errors"
)

// PositionPolicy maps a base coordinate to the coordinate actually clicked.
//
// The variant set is closed: Exact and RandomArea. Consumers switch on the
// concrete type without a default branch.
type PositionPolicy interface {
	Resolve(base Point, r Random) Point
	String() string
	positionPolicy()
}

// Exact always returns the base point.
type Exact struct{}

func (Exact) Resolve(base Point, _ Random) Point { return base }
func (Exact) String() string                     { return "exact" }
func (Exact) positionPolicy()                    {}

// RandomArea samples uniformly inside
// [X-HalfWidth, X+HalfWidth] x [Y-HalfHeight, Y+HalfHeight], bounds included.
type RandomArea struct {
	HalfWidth  int
	HalfHeight int
}

// NewRandomArea validates both half-extents.
func NewRandomArea(halfWidth, halfHeight int) (RandomArea, error) {
	if halfWidth < 0 || halfHeight < 0 {
		return RandomArea{}, errors.NewInvalidArgumentError("random area half-extents must be >= 0, got %dx%d", halfWidth, halfHeight)
	}
	if halfWidth > math.MaxInt32 || halfHeight > math.MaxInt32 {
		return RandomArea{}, errors.NewInvalidArgumentError("random area half-extents too large: %dx%d", halfWidth, halfHeight)
	}
	return RandomArea{HalfWidth: halfWidth, HalfHeight: halfHeight}, nil
}

func (a RandomArea) Resolve(base Point, r Random) Point {
	return Point{
		X: base.X + sampleOffset(a.HalfWidth, r),
		Y: base.Y + sampleOffset(a.HalfHeight, r),
	}
}

func (a RandomArea) String() string {
	return fmt.Sprintf("random-area(±%d,±%d)", a.HalfWidth, a.HalfHeight)
}

func (RandomArea) positionPolicy() {}

// sampleOffset returns a value in [-half, half]. The source is not consulted for half == 0.
func sampleOffset(half int, r Random) int {
	if half == 0 {
		return 0
	}
	return r.IntN(2*half+1) - half
}
