//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package load

import (
	"errors"
	"fmt"
)

var (
	// ErrTableNotFound - a source does not have the requested table (file missing, no such relation)
	ErrTableNotFound = errors.New("table not found")
	// ErrMissingColumn - an expected column is absent; the table degrades to empty
	ErrMissingColumn = errors.New("missing column")
	// ErrParse - a numeric column holds something that is not a number; the row is dropped
	ErrParse = errors.New("unparseable value")
	// ErrEmptyDataset - nothing usable in the topic-document source
	ErrEmptyDataset = errors.New("empty dataset")
)

// ColumnError - which table lacks which column
type ColumnError struct {
	Table  string
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s: %v '%s'", e.Table, ErrMissingColumn, e.Column)
}

func (e *ColumnError) Unwrap() error { return ErrMissingColumn }

// RowError - why a single record was dropped
type RowError struct {
	Table  string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s line %d: column '%s' value '%s': %v", e.Table, e.Line, e.Column, e.Value, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
