//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"database/sql"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vv"
	"github.com/jackc/pgx/v5/pgtype"
)

func makeSQLite(t *testing.T, withmetrics bool) string {
	t.Helper()
	fp := filepath.Join(t.TempDir(), "runs.sqlite")
	conn, err := sql.Open("sqlite", fp)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	stmts := []string{
		`CREATE TABLE topics_by_texts (run_id TEXT, topic_id INTEGER, top_doc TEXT, top_doc_order INTEGER, top_doc_prob REAL)`,
		`INSERT INTO topics_by_texts VALUES ('r0', 1, 'Hom. Il.', 1, 0.6), ('r0', 2, 'Hes. Op.', 1, 0.4), ('r1', 1, 'Pl. Resp.', 1, 0.9)`,
		`CREATE TABLE words_by_topics (run_id TEXT, topic_id INTEGER, top_term TEXT, top_term_order INTEGER, top_prob REAL)`,
		`INSERT INTO words_by_topics VALUES ('r0', 1, 'ἀνήρ', 1, 0.12), ('r0', 1, 'θεός', 2, 0.08)`,
		`CREATE TABLE topics_by_count (run_id TEXT, topic_id INTEGER, count INTEGER)`,
		`INSERT INTO topics_by_count VALUES ('r0', 1, 12), ('r0', 2, 30), ('r1', 1, 5)`,
	}
	if withmetrics {
		stmts = append(stmts,
			`CREATE TABLE runs_sample (run_id TEXT, metric TEXT, metric_score REAL, action_type TEXT)`,
			`INSERT INTO runs_sample VALUES ('r0', 'coherence', 0.5, NULL), ('r1', 'coherence', 0.4, 'eval')`,
		)
	}
	for _, s := range stmts {
		if _, err = conn.Exec(s); err != nil {
			t.Fatalf("%s: %v", s, err)
		}
	}
	return fp
}

func TestLoadSQLite(t *testing.T) {
	cfg := str.CurrentConfiguration{Source: vv.SRCSQLITE, SQLiteFile: makeSQLite(t, true)}
	ds, err := LoadAll(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	if len(ds.Runs) != 2 || ds.Runs[0] != "r0" {
		t.Fatalf("runs = %v", ds.Runs)
	}
	if tt := ds.Terms("r0", "1"); len(tt) != 2 || tt[0].TopTerm != "ἀνήρ" {
		t.Fatalf("terms = %+v", tt)
	}
	if cc := ds.CountsByRun["r0"]; len(cc) != 2 || cc[1].Count != 30 {
		t.Fatalf("counts = %+v", cc)
	}
	if mm := ds.MetricsByRun["r0"]; len(mm) != 1 || mm[0].ActionType != "" {
		t.Fatalf("NULL action_type should read as empty: %+v", mm)
	}
	if ds.Dropped != 0 {
		t.Fatalf("dropped = %d", ds.Dropped)
	}
}

func TestSQLiteMissingTableDegrades(t *testing.T) {
	cfg := str.CurrentConfiguration{Source: vv.SRCSQLITE, SQLiteFile: makeSQLite(t, false)}
	ds, err := LoadAll(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(ds.Runs) != 2 || len(ds.MetricsByRun) != 0 {
		t.Fatalf("runs %v metrics %v", ds.Runs, ds.MetricsByRun)
	}
}

func TestOpenSQLiteMissingFile(t *testing.T) {
	if _, err := OpenSQLite(filepath.Join(t.TempDir(), "nope.sqlite")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestOpenSourceUnknown(t *testing.T) {
	if _, err := OpenSource(context.Background(), str.CurrentConfiguration{Source: "redis"}); err == nil {
		t.Fatal("expected an error for an unknown source")
	}
}

func TestCSVSourceName(t *testing.T) {
	src, err := OpenSource(context.Background(), str.CurrentConfiguration{DataDir: "./x"})
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	if src.Name() != "csv:./x" {
		t.Fatalf("name = %s", src.Name())
	}
}

func TestCellString(t *testing.T) {
	n := pgtype.Numeric{Int: big.NewInt(125), Exp: -3, Valid: true}
	cases := map[string]any{
		"":      nil,
		"abc":   []byte("abc"),
		"7":     int64(7),
		"0.25":  0.25,
		"true":  true,
		"0.125": n,
	}
	for want, in := range cases {
		if got := cellstring(in); got != want {
			t.Fatalf("cellstring(%#v) = %q, want %q", in, got, want)
		}
	}
	if cellstring(pgtype.Numeric{}) != "" {
		t.Fatal("NULL numeric should be empty")
	}
}

func TestRelation(t *testing.T) {
	if _, err := relation("nosuch"); err == nil {
		t.Fatal("expected an error")
	}
}
