// Package mysql introspects MySQL (and MySQL-wire-compatible) schemas
// via information_schema, driven through a shared ConnectionPool.
package mysql

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
	introspect.Register(core.DialectMySQL, New)
}

type introspecter struct {
	pool    *pool.Pool
	log     *logging.Logger
	fkCache *introspect.FKCache
}

// New constructs the MySQL Introspecter.
func New(p *pool.Pool, log *logging.Logger) introspect.Introspecter {
	if log != nil {
		log = log.Named("introspect.mysql")
	}
	return &introspecter{pool: p, log: log, fkCache: introspect.NewFKCache()}
}

func (i *introspecter) Introspect(ctx context.Context, connStr string) (*core.Database, error) {
	conn, err := i.pool.Acquire(ctx, connStr)
	if err != nil {
		return nil, &core.ConnectivityError{Detail: "acquire for enumerate", Cause: err}
	}
	stubs, err := enumerateTables(ctx, conn.Raw)
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

	// Drop tables that failed per-table validation: SchemaError is
	// table-local and non-fatal.
	out := make([]*core.Table, 0, len(tables))
	for _, t := range tables {
		if t != nil {
			out = append(out, t)
		}
	}

	return &core.Database{Dialect: core.DialectMySQL, Tables: out}, nil
}

func (i *introspecter) readTable(ctx context.Context, connStr string, raw *sql.Conn, stub tableStub) (*core.Table, error) {
	cols, err := readColumns(ctx, raw, stub.Name)
	if err != nil {
		return nil, &core.ConnectivityError{Table: stub.Name, Detail: "read columns", Cause: err}
	}
	if err := applyPrimaryKeyColumns(ctx, raw, stub.Name, cols); err != nil {
		return nil, &core.ConnectivityError{Table: stub.Name, Detail: "read primary key", Cause: err}
	}

	idx, err := readIndexes(ctx, raw, stub.Name)
	if err != nil {
		return nil, &core.ConnectivityError{Table: stub.Name, Detail: "read indexes", Cause: err}
	}

	fks, ok := i.fkCache.Get(connStr, stub.Name)
	if !ok {
		fks, err = readForeignKeys(ctx, raw, stub.Name)
		if err != nil {
			return nil, &core.ConnectivityError{Table: stub.Name, Detail: "read foreign keys", Cause: err}
		}
		i.fkCache.Put(connStr, stub.Name, fks)
	}

	t, err := core.NewTable("", stub.Name, cols, idx, fks, stub.Comment)
	if err != nil {
		if i.log != nil {
			i.log.Warning(fmt.Sprintf("skipping table %s: %v", stub.Name, err))
		}
		return nil, nil
	}
	return t, nil
}
