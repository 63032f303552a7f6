package store

import "errors"

// ErrCorruptDocument is returned when a persisted document cannot be
// decoded. The documents are human-editable, so this surfaces a bad
// manual edit rather than silently resetting state.
var ErrCorruptDocument = errors.New("corrupt store document")
