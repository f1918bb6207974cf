package renderer

import "errors"

var (
	ErrNoTracer         = errors.New("renderer: no tracer attached")
	ErrSceneNotDefined  = errors.New("renderer: no scene defined")
	ErrCameraNotDefined = errors.New("renderer: no camera defined")
	ErrInterrupted      = errors.New("renderer: interrupted while rendering")
	ErrInvalidOptions   = errors.New("renderer: invalid options")
)

// Reports an interrupted render while keeping the cause (usually a context
// error) available to errors.Is and errors.As.
type interruptedError struct {
	cause error
}

func (e *interruptedError) Error() string {
	return ErrInterrupted.Error() + ": " + e.cause.Error()
}

func (e *interruptedError) Is(target error) bool {
	return target == ErrInterrupted
}

func (e *interruptedError) Unwrap() error {
	return e.cause
}
