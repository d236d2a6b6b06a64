package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ormreveal/internal/pool"
)

func TestEnsureMARS_InjectsFlagWhenAbsent(t *testing.T) {
	rewritten, injected := pool.EnsureMARS("server=.;database=app;user id=sa;password=x")
	assert.True(t, injected)
	assert.Contains(t, rewritten, "MultipleActiveResultSets=true")
}

func TestEnsureMARS_LeavesFlagAloneWhenPresent(t *testing.T) {
	connStr := "server=.;database=app;MultipleActiveResultSets=true;"
	rewritten, injected := pool.EnsureMARS(connStr)
	assert.False(t, injected)
	assert.Equal(t, connStr, rewritten)
}

func TestEnsureMARS_IsCaseInsensitive(t *testing.T) {
	connStr := "server=.;multipleactiveresultsets=True;"
	_, injected := pool.EnsureMARS(connStr)
	assert.False(t, injected)
}

func TestEnsureMARS_AppendsSeparatorWhenMissing(t *testing.T) {
	rewritten, injected := pool.EnsureMARS("server=.;database=app")
	assert.True(t, injected)
	assert.Equal(t, "server=.;database=app;MultipleActiveResultSets=true", rewritten)
}
