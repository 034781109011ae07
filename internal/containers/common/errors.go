package common

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNilPredicate    = fmt.Errorf("%w: predicate is nil", ErrInvalidArgument)

	// ErrRejectedByStore is returned by the apply step of a pipeline run when the backing store did not
	// perform the change (absent element, already present element). It never reaches the container's caller.
	ErrRejectedByStore = errors.New("mutation rejected by store")

	ErrUnreachable = errors.New("unreachable")
)

func FmtIndexOutOfRange(index int, length int) error {
	return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, index, length)
}

func FmtInsertionIndexOutOfRange(index int, length int) error {
	return fmt.Errorf("%w: insertion index %d, length %d", ErrIndexOutOfRange, index, length)
}

func FmtInvalidArgument(arg string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidArgument, arg, reason)
}
