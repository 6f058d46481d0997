//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package panel

import (
	"errors"
	"fmt"
)

// ErrInvalidRunIndex - a selection that does not resolve to a run; never clamped
var ErrInvalidRunIndex = errors.New("invalid run index")

// RunIndexError - the index asked for and how many runs there were to choose from
type RunIndexError struct {
	Index int
	Runs  int
}

func (e *RunIndexError) Error() string {
	return fmt.Sprintf("%v: %d (there are %d runs: valid indices are 0-%d)", ErrInvalidRunIndex, e.Index, e.Runs, e.Runs-1)
}

func (e *RunIndexError) Unwrap() error { return ErrInvalidRunIndex }
