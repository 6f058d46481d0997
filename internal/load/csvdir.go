//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package load

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vv"
)

// csvnames - candidate file names for each logical table; first hit wins
var csvnames = map[string][]string{
	TOPICDOCS:   {vv.CSVTOPICDOCS, vv.CSVTOPICDOCSALT},
	TOPICTERMS:  {vv.CSVTOPICTERMS},
	TOPICCOUNTS: {vv.CSVTOPICCOUNTS},
	RUNMETRICS:  {vv.CSVRUNMETRICS},
}

// CSVDir - the four CSV files sitting in one directory
type CSVDir struct {
	Dir string
}

func (c CSVDir) Name() string {
	return fmt.Sprintf("%s:%s", vv.SRCCSV, c.Dir)
}

// Fetch - read the whole file for a logical table
func (c CSVDir) Fetch(ctx context.Context, table string) (str.Table, error) {
	names, ok := csvnames[table]
	if !ok {
		return str.Table{}, fmt.Errorf("CSVDir.Fetch(): unknown table '%s'", table)
	}

	for _, n := range names {
		if err := ctx.Err(); err != nil {
			return str.Table{}, err
		}
		fp := filepath.Join(c.Dir, n)
		f, err := os.Open(fp)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return str.Table{}, fmt.Errorf("CSVDir.Fetch(): %w", err)
		}
		tb, err := ReadCSV(n, f)
		_ = f.Close()
		return tb, err
	}

	return str.Table{}, fmt.Errorf("%s in '%s' (tried %s): %w", table, c.Dir, strings.Join(names, ", "), ErrTableNotFound)
}

// ReadCSV - header row plus records; ragged rows are kept and sorted out during coercion
func ReadCSV(name string, r io.Reader) (str.Table, error) {
	tb := str.Table{Name: name}

	rdr := csv.NewReader(r)
	rdr.FieldsPerRecord = -1
	rdr.LazyQuotes = true
	rdr.TrimLeadingSpace = true

	header, err := rdr.Read()
	if errors.Is(err, io.EOF) {
		// an empty file is an empty table, not an error
		return tb, nil
	}
	if err != nil {
		return tb, fmt.Errorf("ReadCSV(): '%s' header: %w", name, err)
	}

	for i := range header {
		h := header[i]
		if i == 0 {
			h = string(bytes.TrimPrefix([]byte(h), []byte{0xEF, 0xBB, 0xBF}))
		}
		header[i] = strings.TrimSpace(h)
	}
	tb.Header = header

	recs, err := rdr.ReadAll()
	if err != nil {
		return tb, fmt.Errorf("ReadCSV(): '%s': %w", name, err)
	}
	tb.Records = recs
	return tb, nil
}
