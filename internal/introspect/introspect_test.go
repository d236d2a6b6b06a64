package introspect_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"ormreveal/internal/core"
	"ormreveal/internal/introspect"
	"ormreveal/internal/logging"
	"ormreveal/internal/pool"
)

type stubIntrospecter struct{}

func (stubIntrospecter) Introspect(context.Context, string) (*core.Database, error) {
	return &core.Database{Dialect: core.DialectMySQL}, nil
}

func TestNewIntrospecter_UnsupportedProviderNamesTheToken(t *testing.T) {
	_, err := introspect.NewIntrospecter("Oracle.ManagedDataAccess", nil, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Oracle.ManagedDataAccess")

	var cfgErr *core.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestNewIntrospecter_DispatchesToRegisteredFactory(t *testing.T) {
	introspect.Register(core.DialectMySQL, func(*pool.Pool, *logging.Logger) introspect.Introspecter {
		return stubIntrospecter{}
	})

	got, err := introspect.NewIntrospecter("mysql", nil, nil)
	require.NoError(t, err)

	db, err := got.Introspect(context.Background(), "irrelevant")
	require.NoError(t, err)
	require.Equal(t, core.DialectMySQL, db.Dialect)
}
