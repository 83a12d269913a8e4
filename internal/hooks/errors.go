package hooks

import (
	"errors"
	"fmt"
)

// ErrNotExecutable is wrapped by HookExecutionError for hooks without an
// executable bit.
var ErrNotExecutable = errors.New("not executable")

// HookExecutionError reports a hook that could not run or failed.
type HookExecutionError struct {
	Hook     Hook
	Err      error
	ExitCode int // -1 if the hook did not exit normally
}

func (e *HookExecutionError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("%s hook %s exited with status %d", e.Hook.Slot, e.Hook.Path, e.ExitCode)
	}
	return fmt.Sprintf("%s hook %s: %v", e.Hook.Slot, e.Hook.Path, e.Err)
}

func (e *HookExecutionError) Unwrap() error {
	return e.Err
}
