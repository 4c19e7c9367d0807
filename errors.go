package vecbench

import "errors"

var (
	// ErrCheckFailed is returned alongside the report when the index fails its
	// structural check.
	ErrCheckFailed = errors.New("vecbench: index check failed")

	// ErrInvalidRemoveRatio is returned when the remove ratio is outside [0, 1].
	ErrInvalidRemoveRatio = errors.New("vecbench: remove ratio must be within [0, 1]")
)
