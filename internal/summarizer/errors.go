package summarizer

import (
	"errors"
	"fmt"
)

var (
	errFieldSet       = errors.New("field already set")
	errBadTransition  = errors.New("invalid state transition")
	errMissingTargets = errors.New("summary and documentation paths are required")
)

// StageError reports a failed text-generation call. Nothing has been
// persisted when it is returned.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// PersistError reports a failed write of one output document.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
