package table

import (
	"errors"
	"fmt"

	"github.com/raphi011/ptable/internal/ui/styles"
)

var (
	// ErrDuplicateColumn is returned by AddColumn for an existing name.
	ErrDuplicateColumn = errors.New("column already exists")

	// ErrUnknownColumn is returned when a column name does not exist and
	// the operation cannot create it.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrPolicyFixed is returned when an update asks for a different
	// aggregate than the one the column was created with.
	ErrPolicyFixed = errors.New("aggregate of an existing column cannot change")

	// ErrOutOfRange is returned for row or column indices outside the
	// table after negative indices are resolved.
	ErrOutOfRange = errors.New("index out of range")

	// ErrInvalidRef is returned for references that make no sense on
	// their axis, such as a row addressed by name.
	ErrInvalidRef = errors.New("invalid reference")

	// ErrClosed is returned by every mutation after Close.
	ErrClosed = errors.New("table is closed")
)

func unknownColumn(name string, known []string) error {
	if s := styles.Suggest(name, known); s != "" {
		return fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownColumn, name, s)
	}
	return fmt.Errorf("%w %q", ErrUnknownColumn, name)
}

func outOfRange(axis string, i, n int) error {
	return fmt.Errorf("%s %d: %w (have %d)", axis, i, ErrOutOfRange, n)
}
