package arraycache

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType is returned for inputs other than *array.DataArray and *array.Dataset.
	ErrUnsupportedType = errors.New("arraycache: type not supported")
	// ErrUnserializable is returned when a keyword argument cannot be JSON encoded.
	ErrUnserializable = errors.New("arraycache: signature not serializable")
	// ErrNilResult is returned when the wrapped function returns no value and no error.
	ErrNilResult = errors.New("arraycache: function returned nil")
	// ErrInvalidFunc is returned by Wrap for functions without a name or body.
	ErrInvalidFunc = errors.New("arraycache: invalid function")
)

// Stage names the step of a Call that failed.
type Stage string

const (
	StageKey     Stage = "key"
	StageLookup  Stage = "lookup"
	StageRead    Stage = "read"
	StageCompute Stage = "compute"
	StageWrite   Stage = "write"
)

// CallError wraps any failure of a cached Call.
type CallError struct {
	Func     string
	Filename string // empty before the key is resolved
	Stage    Stage
	Err      error
}

func (e *CallError) Error() string {
	switch {
	case e.Filename != "":
		return fmt.Sprintf("arraycache: %s %s (%s): %v", e.Func, e.Stage, e.Filename, e.Err)
	default:
		return fmt.Sprintf("arraycache: %s %s: %v", e.Func, e.Stage, e.Err)
	}
}

func (e *CallError) Unwrap() error { return e.Err }
