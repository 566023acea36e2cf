package board

import (
	"fmt"
	"slices"
)

// InvariantError reports a compaction property that does not hold.
type InvariantError struct {
	Column   int
	Property string
	Detail   string
}

func (e *InvariantError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("board %s: %s", e.Property, e.Detail)
	}
	return fmt.Sprintf("column %d %s: %s", e.Column, e.Property, e.Detail)
}

// Verify checks that after is a valid compaction of before: same dimensions,
// the same blocks per column in the same top-to-bottom order, and every
// column bottom-aligned.
func Verify(before, after *Board) error {
	if before.w != after.w || before.h != after.h {
		return &InvariantError{
			Column:   -1,
			Property: "dimensions",
			Detail:   fmt.Sprintf("%dx%d became %dx%d", before.w, before.h, after.w, after.h),
		}
	}
	for x := 0; x < before.w; x++ {
		if n, m := before.Occupied(x), after.Occupied(x); n != m {
			return &InvariantError{Column: x, Property: "occupancy", Detail: fmt.Sprintf("%d blocks became %d", n, m)}
		}
		if !slices.Equal(before.Colors(x), after.Colors(x)) {
			return &InvariantError{
				Column:   x,
				Property: "order",
				Detail:   fmt.Sprintf("%s became %s", FormatColumn(before.column(x)), FormatColumn(after.column(x))),
			}
		}
		if !columnSettled(after.column(x)) {
			return &InvariantError{Column: x, Property: "alignment", Detail: FormatColumn(after.column(x))}
		}
	}
	return nil
}
