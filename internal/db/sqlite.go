//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/e-gun/HipparchiaTopicRuns/internal/load"
	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vv"
	_ "modernc.org/sqlite"
)

// https://pkg.go.dev/modernc.org/sqlite

// SQLiteSource - the four tables inside one sqlite file, opened read-only
type SQLiteSource struct {
	Path string
	conn *sql.DB
}

// OpenSQLite - open the file read-only; a missing file is an error here rather than an empty database
func OpenSQLite(path string) (*SQLiteSource, error) {
	const (
		DSN = "file:%s?mode=ro"
	)

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("OpenSQLite(): '%s': %w", path, err)
	}

	conn, err := sql.Open("sqlite", fmt.Sprintf(DSN, path))
	if err != nil {
		return nil, fmt.Errorf("OpenSQLite(): %w", err)
	}
	// one reader is plenty and sidesteps sqlite's locking entirely
	conn.SetMaxOpenConns(1)

	return &SQLiteSource{Path: path, conn: conn}, nil
}

func (s *SQLiteSource) Name() string {
	return fmt.Sprintf("%s:%s", vv.SRCSQLITE, s.Path)
}

func (s *SQLiteSource) Close() {
	if s.conn != nil {
		Msg.EC(s.conn.Close())
	}
}

// Fetch - SELECT * from the relation behind a logical table
func (s *SQLiteSource) Fetch(ctx context.Context, table string) (str.Table, error) {
	const (
		EXISTS = `SELECT name FROM sqlite_master WHERE type IN ('table', 'view') AND name = ?`
		SELALL = `SELECT * FROM "%s"`
	)

	rel, err := relation(table)
	if err != nil {
		return str.Table{}, err
	}

	var found string
	err = s.conn.QueryRowContext(ctx, EXISTS, rel).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return str.Table{}, fmt.Errorf("%s in '%s': %w", rel, s.Path, load.ErrTableNotFound)
	}
	if err != nil {
		return str.Table{}, fmt.Errorf("SQLiteSource.Fetch(): %w", err)
	}

	rows, err := s.conn.QueryContext(ctx, fmt.Sprintf(SELALL, rel))
	if err != nil {
		return str.Table{}, fmt.Errorf("SQLiteSource.Fetch(): %w", err)
	}
	defer rows.Close()

	tb := str.Table{Name: rel}
	tb.Header, err = rows.Columns()
	if err != nil {
		return str.Table{}, fmt.Errorf("SQLiteSource.Fetch(): %w", err)
	}

	vals := make([]any, len(tb.Header))
	ptrs := make([]any, len(tb.Header))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	for rows.Next() {
		if err = rows.Scan(ptrs...); err != nil {
			return str.Table{}, fmt.Errorf("SQLiteSource.Fetch(): %s: %w", rel, err)
		}
		rec := make([]string, len(vals))
		for i, v := range vals {
			rec[i] = cellstring(v)
		}
		tb.Records = append(tb.Records, rec)
	}
	return tb, rows.Err()
}
