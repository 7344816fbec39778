package domain

import "errors"

// ErrTagNotFound is returned when no cell in the notebook carries the requested tag.
var ErrTagNotFound = errors.New("cell tag not found")

// ErrCellIndex is returned when a cell index is outside the notebook's cell list.
var ErrCellIndex = errors.New("cell index out of range")

// ErrNoExecuteResult is returned when injected code was expected to yield an
// execute_result output but produced none.
var ErrNoExecuteResult = errors.New("code did not produce an execute_result")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")
