//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package load

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/e-gun/HipparchiaTopicRuns/internal/mm"
	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
	"golang.org/x/sync/errgroup"
)

var Msg = mm.NewMessageMakerWithDefaults()

// Loader - fetch all four tables from a Source, then aggregate
type Loader struct {
	Src     Source
	Timeout time.Duration // zero means no deadline beyond ctx
	Opts    ParseOptions
}

// Load - the four fetches run concurrently and are joined before anything is aggregated
func (l Loader) Load(ctx context.Context) (*str.Dataset, error) {
	const (
		FETCHED = "%d tables fetched from %s"
		BUILT   = "%d runs aggregated (%d rows dropped)"
		MISSING = "%v: treating '%s' as empty"
	)

	if l.Src == nil {
		return nil, errors.New("Loader.Load(): no source")
	}

	start := time.Now()
	previous := time.Now()

	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	warn := l.Opts.warn()

	var (
		tt  Tables
		mtx sync.Mutex
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range AllTables {
		name := name
		g.Go(func() error {
			tb, err := l.Src.Fetch(gctx, name)
			if errors.Is(err, ErrTableNotFound) {
				warn(fmt.Sprintf(MISSING, err, name))
				tb, err = str.Table{Name: name}, nil
			}
			if err != nil {
				return fmt.Errorf("fetching %s from %s: %w", name, l.Src.Name(), err)
			}
			if tb.Name == "" {
				tb.Name = name
			}
			mtx.Lock()
			tt.set(name, tb)
			mtx.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	Msg.Timer("A1", fmt.Sprintf(FETCHED, len(AllTables), l.Src.Name()), start, previous)

	previous = time.Now()
	ds := Aggregate(l.Src.Name(), tt, l.Opts)
	Msg.Timer("A2", fmt.Sprintf(BUILT, len(ds.Runs), ds.Dropped), start, previous)

	return ds, nil
}
