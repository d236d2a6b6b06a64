// Package postgresql introspects PostgreSQL schemas via pg_catalog and
// information_schema, driven through a shared ConnectionPool.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"

	"ormreveal/internal/core"
	"ormreveal/internal/introspect"
	"ormreveal/internal/logging"
	"ormreveal/internal/pool"
)

func init() {
	introspect.Register(core.DialectPostgreSQL, New)
}

type introspecter struct {
	pool    *pool.Pool
	log     *logging.Logger
	fkCache *introspect.FKCache
	schema  string
}

// New constructs the PostgreSQL Introspecter, scoped to the "public"
// schema unless overridden.
func New(p *pool.Pool, log *logging.Logger) introspect.Introspecter {
	if log != nil {
		log = log.Named("introspect.postgresql")
	}
	return &introspecter{pool: p, log: log, fkCache: introspect.NewFKCache(), schema: "public"}
}

func (i *introspecter) Introspect(ctx context.Context, connStr string) (*core.Database, error) {
	conn, err := i.pool.Acquire(ctx, connStr)
	if err != nil {
		return nil, &core.ConnectivityError{Detail: "acquire for enumerate", Cause: err}
	}
	stubs, err := enumerateTables(ctx, conn.Raw, i.schema)
	i.pool.Release(conn)
	if err != nil {
		return nil, &core.ConnectivityError{Detail: "enumerate tables", Cause: err}
	}

	tables := make([]*core.Table, len(stubs))
	err = introspect.RunBatches(ctx, i.pool, connStr, len(stubs), func(ctx context.Context, c *pool.Conn, idx int) error {
		stub := stubs[idx]
		t, err := i.readTable(ctx, connStr, c.Raw, stub)
		if err != nil {
			return err
		}
		tables[idx] = t
		return nil
	})
	if err != nil {
		i.pool.Clear()
		return nil, err
	}

	introspect.ApplyOneToOneHints(tables)

	out := make([]*core.Table, 0, len(tables))
	for _, t := range tables {
		if t != nil {
			out = append(out, t)
		}
	}
	return &core.Database{Dialect: core.DialectPostgreSQL, Tables: out}, nil
}

func (i *introspecter) readTable(ctx context.Context, connStr string, raw *sql.Conn, stub tableStub) (*core.Table, error) {
	cols, err := readColumns(ctx, raw, i.schema, stub.Name)
	if err != nil {
		return nil, &core.ConnectivityError{Table: stub.Name, Detail: "read columns", Cause: err}
	}

	idx, err := readIndexes(ctx, raw, i.schema, stub.Name)
	if err != nil {
		return nil, &core.ConnectivityError{Table: stub.Name, Detail: "read indexes", Cause: err}
	}

	fks, ok := i.fkCache.Get(connStr, stub.Name)
	if !ok {
		fks, err = readForeignKeys(ctx, raw, i.schema, stub.Name)
		if err != nil {
			return nil, &core.ConnectivityError{Table: stub.Name, Detail: "read foreign keys", Cause: err}
		}
		i.fkCache.Put(connStr, stub.Name, fks)
	}

	t, err := core.NewTable(i.schema, stub.Name, cols, idx, fks, stub.Comment)
	if err != nil {
		if i.log != nil {
			i.log.Warning(fmt.Sprintf("skipping table %s: %v", stub.Name, err))
		}
		return nil, nil
	}
	return t, nil
}
