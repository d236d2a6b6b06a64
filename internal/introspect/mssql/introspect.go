// Package mssql introspects SQL Server schemas via the sys.* catalog
// views, driven through a shared ConnectionPool.
package mssql

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
	introspect.Register(core.DialectSQLServer, New)
}

type introspecter struct {
	pool    *pool.Pool
	log     *logging.Logger
	fkCache *introspect.FKCache
	schema  string
}

// New constructs the SQL Server Introspecter, scoped to the dbo schema
// unless overridden.
func New(p *pool.Pool, log *logging.Logger) introspect.Introspecter {
	if log != nil {
		log = log.Named("introspect.mssql")
	}
	return &introspecter{pool: p, log: log, fkCache: introspect.NewFKCache(), schema: "dbo"}
}

func (i *introspecter) Introspect(ctx context.Context, connStr string) (*core.Database, error) {
	connStr = i.ensureMARS(connStr)

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
	return &core.Database{Dialect: core.DialectSQLServer, Tables: out}, nil
}

// ensureMARS injects the multiple-active-result-sets flag when absent,
// logging a warning: per-table introspection issues overlapping result
// iterations on one logical connection and requires it.
func (i *introspecter) ensureMARS(connStr string) string {
	rewritten, injected := pool.EnsureMARS(connStr)
	if injected && i.log != nil {
		i.log.Warning("connection string missing MultipleActiveResultSets; injecting it")
	}
	return rewritten
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
