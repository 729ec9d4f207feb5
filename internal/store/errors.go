package store

import "fmt"

// SaveError reports a failed batch write. The whole batch rolled back;
// zero rows were committed.
type SaveError struct {
	Table string
	Err   error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save to %s failed: %v", e.Table, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
