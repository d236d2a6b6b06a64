// Package introspect holds the SchemaReaderFactory: a pure discriminator
// on a provider-name string that resolves to a registered Introspecter.
package introspect

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"ormreveal/internal/core"
	"ormreveal/internal/logging"
	"ormreveal/internal/pool"
)

// Introspecter reads every user table, column, index, and foreign key
// reachable through connStr and returns the normalized schema graph.
type Introspecter interface {
	Introspect(ctx context.Context, connStr string) (*core.Database, error)
}

// Factory constructs an Introspecter wired to a shared pool and logger.
type Factory func(p *pool.Pool, log *logging.Logger) Introspecter

var (
	mu       sync.Mutex
	registry = map[core.Dialect]Factory{}
)

// Register associates a dialect with a Factory. Called from each dialect
// package's init().
func Register(d core.Dialect, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	registry[d] = f
}

// NewIntrospecter resolves provider (a discriminator token, matched
// case-insensitively) to a registered Introspecter. Unrecognized tokens
// fail with "unsupported provider".
func NewIntrospecter(provider string, p *pool.Pool, log *logging.Logger) (Introspecter, error) {
	d, err := core.DialectFromProvider(provider)
	if err != nil {
		return nil, err
	}

	mu.Lock()
	f, ok := registry[d]
	mu.Unlock()
	if !ok {
		return nil, &core.ConfigError{Detail: fmt.Sprintf("unsupported provider %q", provider)}
	}
	return f(p, log), nil
}

// normalizeSchema returns the dialect-appropriate default schema name
// when none is configured: dbo for SQL Server, public for PostgreSQL,
// and the empty string for MySQL (which scopes by current database,
// not schema).
func normalizeSchema(d core.Dialect, configured string) string {
	if strings.TrimSpace(configured) != "" {
		return configured
	}
	switch d {
	case core.DialectSQLServer:
		return "dbo"
	case core.DialectPostgreSQL:
		return "public"
	default:
		return ""
	}
}
