package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewf(t *testing.T) {
	err := Newf("error: %s %d", "test", 42)
	require.NotNil(t, err)
	assert.Equal(t, "error: test 42", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHintf(t *testing.T) {
	err := New("error")
	withHint := WithHintf(err, "try setting value to %d", 42)

	hints := GetAllHints(withHint)
	require.Len(t, hints, 1)
	assert.Equal(t, "try setting value to 42", hints[0])
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")

	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "errors_test.go")
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.False(t, IsInvalidArgument(nil))
	assert.False(t, IsInvalidState(nil))
	assert.False(t, IsUnsupported(nil))
	assert.False(t, IsNotFound(nil))
}

func TestSentinelHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		msg   string
	}{
		{"invalid argument", NewInvalidArgumentError("x must be >= 0, got %d", -1), IsInvalidArgument, "x must be >= 0, got -1"},
		{"invalid state", NewInvalidStateError("cannot pause while %s", "STOPPED"), IsInvalidState, "cannot pause while STOPPED"},
		{"not found", NewNotFoundError("run %s", "abc"), IsNotFound, "run abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	err := Wrap(NewInvalidStateError("already running"), "start macro")

	assert.True(t, IsInvalidState(err))
	assert.False(t, IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "start macro")

	unsupported := Wrap(ErrUnsupported, "global hook")
	assert.True(t, IsUnsupported(unsupported))
}

func ExampleWrap() {
	baseErr := New("hook not registered")
	err := Wrap(baseErr, "failed to install capture listener")
	fmt.Println(err)
	// Output: failed to install capture listener: hook not registered
}

func ExampleWithHint() {
	err := New("min jitter greater than max jitter")
	err = WithHint(err, "swap the two values")

	hints := GetAllHints(err)
	fmt.Println(hints[0])
	// Output: swap the two values
}
