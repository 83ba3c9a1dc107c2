package errstat

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageOverflow is matched by every [*OverflowError].
	ErrStorageOverflow = errors.New("errstat: result exceeds table storage range")
	// ErrShapeMismatch reports a table built for another word width.
	ErrShapeMismatch = errors.New("errstat: table shape does not match engine domain")

	errNilArchitecture = errors.New("errstat: architecture must not be nil")
	errNilTable        = errors.New("errstat: table must not be nil")
)

// OverflowError reports the first operand pair whose result does not fit
// the table element type.
type OverflowError struct {
	Arch  string
	A, B  uint32
	Value uint32
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("errstat: %s(%d, %d) = %d exceeds %d", e.Arch, e.A, e.B, e.Value, MaxStorageValue)
}

// Is reports whether target is [ErrStorageOverflow].
func (e *OverflowError) Is(target error) bool {
	return target == ErrStorageOverflow
}
