//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/e-gun/HipparchiaTopicRuns/internal/load"
	"github.com/e-gun/HipparchiaTopicRuns/internal/mm"
	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vv"
	"github.com/jackc/pgx/v5/pgtype"
)

var Msg = mm.NewMessageMakerWithDefaults()

// tablenames - logical table -> relation name; the same in sqlite and postgres
var tablenames = map[string]string{
	load.TOPICDOCS:   vv.TBTOPICDOCS,
	load.TOPICTERMS:  vv.TBTOPICTERMS,
	load.TOPICCOUNTS: vv.TBTOPICCOUNTS,
	load.RUNMETRICS:  vv.TBRUNMETRICS,
}

func relation(table string) (string, error) {
	r, ok := tablenames[table]
	if !ok {
		return "", fmt.Errorf("unknown table '%s'", table)
	}
	return r, nil
}

// cellstring - whatever the driver handed back, as the text a csv file would have held
func cellstring(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case pgtype.Numeric:
		f, err := x.Float64Value()
		if err != nil || !f.Valid {
			return ""
		}
		return strconv.FormatFloat(f.Float64, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// Closer - a load.Source holding a connection that should be released
type Closer interface {
	load.Source
	Close()
}

type nopcloser struct {
	load.Source
}

func (nopcloser) Close() {}

// OpenSource - the configured source: a csv directory, a sqlite file, or a postgres database
func OpenSource(ctx context.Context, cfg str.CurrentConfiguration) (Closer, error) {
	switch cfg.Source {
	case vv.SRCSQLITE:
		return OpenSQLite(cfg.SQLiteFile)
	case vv.SRCPSQL:
		return OpenPostgres(ctx, cfg.PGLogin)
	case vv.SRCCSV, "":
		return nopcloser{load.CSVDir{Dir: cfg.DataDir}}, nil
	default:
		return nil, fmt.Errorf("unknown source '%s': expected %s, %s or %s", cfg.Source, vv.SRCCSV, vv.SRCSQLITE, vv.SRCPSQL)
	}
}

// LoadAll - open the configured source, load it, release it
func LoadAll(ctx context.Context, cfg str.CurrentConfiguration) (*str.Dataset, error) {
	src, err := OpenSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	l := load.Loader{Src: src, Timeout: cfg.LoadTimeout}
	return l.Load(ctx)
}
