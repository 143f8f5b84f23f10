//go:build !native

package hook

import "github.com/teranos/mousemacro/errors"

// unsupportedDriver is used by builds without the native tag.
type unsupportedDriver struct{}

// NewDriver returns the native driver for this build.
func NewDriver() Driver {
	return unsupportedDriver{}
}

func (unsupportedDriver) Start() (<-chan Event, error) {
	return nil, errors.WithHint(
		errors.Wrap(errors.ErrUnsupported, "global input hook"),
		"rebuild with -tags native to enable capture and hotkeys")
}

func (unsupportedDriver) Stop() {}
