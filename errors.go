package colorlut

import (
	"errors"
	"fmt"
)

// Configuration errors.
var (
	// ErrInvalidConfig wraps a rejected scalar; the message names the field.
	ErrInvalidConfig = errors.New("colorlut: invalid configuration")

	// ErrInvalidProfile is returned when the icc property names a file
	// that cannot be used as an input profile.
	ErrInvalidProfile = errors.New("colorlut: invalid ICC profile")

	// ErrUnknownProperty is returned for names not in Properties.
	ErrUnknownProperty = errors.New("colorlut: unknown property")

	// ErrPropertyDisabled is returned when setting a listed but disabled
	// property such as temperature.
	ErrPropertyDisabled = errors.New("colorlut: property is disabled")

	// ErrFrameSize is returned when input and output frames differ in size
	// or a frame's buffer is too small for its dimensions.
	ErrFrameSize = errors.New("colorlut: frame size mismatch")

	// ErrTexturesUnsupported is returned by Filter.RenderTextures when the
	// active renderer works on CPU frames only.
	ErrTexturesUnsupported = errors.New("colorlut: renderer cannot draw textures")
)

// BuildError reports a failed table build. The frame that triggered it
// is not rendered.
type BuildError struct {
	Config Config
	Err    error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("colorlut: build table for %v: %v", e.Config, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// State is the lifecycle state of a Filter.
type State int

const (
	// Stopped is the initial state and the state after Stop.
	Stopped State = iota
	// Started means GPU resources are held.
	Started
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Started:
		return "started"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// LifecycleError is the panic value for a call that is illegal in the
// filter's current state: starting twice, stopping twice, or rendering
// while stopped. These are host bugs, not runtime conditions.
type LifecycleError struct {
	Op    string
	State State
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("colorlut: %s called while %s", e.Op, e.State)
}
