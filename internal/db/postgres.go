//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/e-gun/HipparchiaTopicRuns/internal/load"
	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vv"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGSource - the four tables in a postgres database; only ever read
type PGSource struct {
	Login str.PostgresLogin
	pool  *pgxpool.Pool
}

// OpenPostgres - build the pool and make sure the server answers
func OpenPostgres(ctx context.Context, pl str.PostgresLogin) (*PGSource, error) {
	pool, err := FillDBConnectionPool(ctx, pl)
	if err != nil {
		return nil, err
	}
	return &PGSource{Login: pl, pool: pool}, nil
}

// FillDBConnectionPool - build the pgxpool that the four fetches will Acquire() from
func FillDBConnectionPool(ctx context.Context, pl str.PostgresLogin) (*pgxpool.Pool, error) {
	// one connection per table is all the loader can use at once

	const (
		UTPL    = "postgres://%s:%s@%s:%d/%s?pool_min_conns=%d&pool_max_conns=%d"
		POOLMIN = 1
		POOLMAX = 4
		FAIL1   = "configuration error: could not parse the connection url for %s@%s:%d/%s"
		FAIL2   = "could not connect to PostgreSQL"
		ERRRUN  = `dial error`
		FAILRUN = `'%s': the PostgreSQL server cannot be found; check that it is running and serving on port %d`
		ERRSRV  = `server error`
		FAILSRV = `'%s': there is configuration problem; see the following response from PostgreSQL:`
	)

	url := fmt.Sprintf(UTPL, pl.User, pl.Pass, pl.Host, pl.Port, pl.DBName, POOLMIN, POOLMAX)

	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		// the url carries the password: do not echo it
		return nil, fmt.Errorf(FAIL1, pl.User, pl.Host, pl.Port, pl.DBName)
	}

	thepool, err := pgxpool.NewWithConfig(ctx, config)
	if err == nil {
		err = thepool.Ping(ctx)
	}
	if err != nil {
		Msg.CRIT(FAIL2)
		if strings.Contains(err.Error(), ERRRUN) {
			Msg.CRIT(fmt.Sprintf(FAILRUN, ERRRUN, pl.Port))
		}
		if strings.Contains(err.Error(), ERRSRV) {
			Msg.CRIT(fmt.Sprintf(FAILSRV, ERRSRV))
			parts := strings.SplitN(err.Error(), ERRSRV, 2)
			Msg.CRIT(parts[len(parts)-1])
		}
		if thepool != nil {
			thepool.Close()
		}
		return nil, fmt.Errorf("%s: %w", FAIL2, err)
	}
	return thepool, nil
}

func (p *PGSource) Name() string {
	return fmt.Sprintf("%s:%s@%s:%d/%s", vv.SRCPSQL, p.Login.User, p.Login.Host, p.Login.Port, p.Login.DBName)
}

func (p *PGSource) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// Fetch - SELECT * from the relation behind a logical table
func (p *PGSource) Fetch(ctx context.Context, table string) (str.Table, error) {
	const (
		EXISTS = `SELECT to_regclass($1) IS NOT NULL`
		SELALL = `SELECT * FROM %s`
	)

	rel, err := relation(table)
	if err != nil {
		return str.Table{}, err
	}

	dbconn, err := p.pool.Acquire(ctx)
	if err != nil {
		return str.Table{}, fmt.Errorf("PGSource.Fetch(): could not Acquire(): %w", err)
	}
	defer dbconn.Release()

	var found bool
	if err = dbconn.QueryRow(ctx, EXISTS, rel).Scan(&found); err != nil {
		return str.Table{}, fmt.Errorf("PGSource.Fetch(): %w", err)
	}
	if !found {
		return str.Table{}, fmt.Errorf("%s in '%s': %w", rel, p.Login.DBName, load.ErrTableNotFound)
	}

	rows, err := dbconn.Query(ctx, fmt.Sprintf(SELALL, pgx.Identifier{rel}.Sanitize()))
	if err != nil {
		return str.Table{}, fmt.Errorf("PGSource.Fetch(): %w", err)
	}
	defer rows.Close()

	tb := str.Table{Name: rel}
	for _, fd := range rows.FieldDescriptions() {
		tb.Header = append(tb.Header, fd.Name)
	}

	for rows.Next() {
		vals, e := rows.Values()
		if e != nil {
			return str.Table{}, fmt.Errorf("PGSource.Fetch(): %s: %w", rel, e)
		}
		rec := make([]string, len(vals))
		for i, v := range vals {
			rec[i] = cellstring(v)
		}
		tb.Records = append(tb.Records, rec)
	}
	return tb, rows.Err()
}
