package pool_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"ormreveal/internal/pool"
)

func TestNew_RejectsNonPositiveMax(t *testing.T) {
	_, err := pool.New("sqlmock", 0)
	require.Error(t, err)
}

func TestAcquireRelease_ExhaustionAndReuse(t *testing.T) {
	const dsn = "pool-test-dsn"
	_, _, err := sqlmock.NewWithDSN(dsn)
	require.NoError(t, err)

	p, err := pool.New("sqlmock", 1)
	require.NoError(t, err)
	defer p.Clear()

	ctx := context.Background()

	first, err := p.Acquire(ctx, dsn)
	require.NoError(t, err)
	require.NotNil(t, first.Raw)

	_, err = p.Acquire(ctx, dsn)
	require.Error(t, err, "second acquire before release must fail: pool max is 1")

	stats := p.Statistics()[dsn]
	require.Equal(t, 1, stats.Total)
	require.Equal(t, 0, stats.Available)

	p.Release(first)

	stats = p.Statistics()[dsn]
	require.Equal(t, 1, stats.Total)
	require.Equal(t, 1, stats.Available)

	second, err := p.Acquire(ctx, dsn)
	require.NoError(t, err)
	require.NotNil(t, second.Raw)

	p.Release(second)
}

func TestStatistics_ReportsPerConnectionString(t *testing.T) {
	const dsnA, dsnB = "dsn-a", "dsn-b"
	_, _, err := sqlmock.NewWithDSN(dsnA)
	require.NoError(t, err)
	_, _, err = sqlmock.NewWithDSN(dsnB)
	require.NoError(t, err)

	p, err := pool.New("sqlmock", 3)
	require.NoError(t, err)
	defer p.Clear()

	ctx := context.Background()
	connA, err := p.Acquire(ctx, dsnA)
	require.NoError(t, err)
	defer p.Release(connA)

	stats := p.Statistics()
	require.Contains(t, stats, dsnA)
	require.Equal(t, 3, stats[dsnA].Max)
	require.NotContains(t, stats, dsnB)
}
