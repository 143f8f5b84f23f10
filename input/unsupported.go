//go:build !native

package input

import "github.com/teranos/mousemacro/errors"

// NewMouse returns the native mouse for this build.
func NewMouse() (Mouse, error) {
	return nil, errors.WithHint(
		errors.Wrap(errors.ErrUnsupported, "mouse injection"),
		"rebuild with -tags native, or run with --dry-run")
}
