// Package pool implements a bounded, thread-safe connection pool keyed
// by connection string, shared by every dialect reader.
package pool

import (
	"context"
	"database/sql"
	"sync"

	"ormreveal/internal/core"
)

// Stats is a point-in-time snapshot of one connection string's pool
// state.
type Stats struct {
	Total     int
	Available int
	Max       int
}

type entry struct {
	db    *sql.DB
	queue []*sql.Conn
	total int
}

// Pool is a per-connection-string FIFO queue of live *sql.Conn, bounded
// by a total-count ceiling. All mutation of queue/total bookkeeping
// happens under mu; network I/O (opening databases, opening/closing
// connections) happens outside it.
type Pool struct {
	mu         sync.Mutex
	driverName string
	max        int
	entries    map[string]*entry
}

// New constructs a Pool for the given database/sql driver name. max
// must be positive; max<=0 is rejected at construction.
func New(driverName string, max int) (*Pool, error) {
	if max <= 0 {
		return nil, &core.ConfigError{Detail: "pool max must be positive"}
	}
	return &Pool{
		driverName: driverName,
		max:        max,
		entries:    make(map[string]*entry),
	}, nil
}

// Conn is a checked-out connection; callers must pass it to Release
// exactly once.
type Conn struct {
	ConnString string
	Raw        *sql.Conn
}

// Acquire returns a connection ready for use for connStr. If a queued
// connection exists it is reused; else, if the connection string's
// total is below max, a new one is opened; else Acquire fails with a
// pool-exhausted ConnectivityError.
func (p *Pool) Acquire(ctx context.Context, connStr string) (*Conn, error) {
	p.mu.Lock()
	e, ok := p.entries[connStr]
	if !ok {
		e = &entry{}
		p.entries[connStr] = e
	}
	if n := len(e.queue); n > 0 {
		raw := e.queue[0]
		e.queue = e.queue[1:]
		p.mu.Unlock()
		return &Conn{ConnString: connStr, Raw: raw}, nil
	}
	if e.total >= p.max {
		p.mu.Unlock()
		return nil, &core.ConnectivityError{Detail: "pool exhausted"}
	}
	e.total++
	db := e.db
	p.mu.Unlock()

	if db == nil {
		opened, err := sql.Open(p.driverName, connStr)
		if err != nil {
			p.mu.Lock()
			e.total--
			p.mu.Unlock()
			return nil, &core.ConnectivityError{Detail: "open failed", Cause: err}
		}
		p.mu.Lock()
		if e.db == nil {
			e.db = opened
		} else {
			opened.Close()
		}
		db = e.db
		p.mu.Unlock()
	}

	raw, err := db.Conn(ctx)
	if err != nil {
		p.mu.Lock()
		e.total--
		p.mu.Unlock()
		return nil, &core.ConnectivityError{Detail: "connect failed", Cause: err}
	}
	return &Conn{ConnString: connStr, Raw: raw}, nil
}

// Release returns conn to its connection string's queue if there is
// room, otherwise disposes of it. Disposal errors are swallowed once the
// total has already been decremented — a close failure on a connection
// we're discarding anyway isn't actionable by the caller.
func (p *Pool) Release(conn *Conn) {
	if conn == nil || conn.Raw == nil {
		return
	}
	p.mu.Lock()
	e, ok := p.entries[conn.ConnString]
	if !ok {
		p.mu.Unlock()
		_ = conn.Raw.Close()
		return
	}
	if len(e.queue) < p.max {
		e.queue = append(e.queue, conn.Raw)
		p.mu.Unlock()
		return
	}
	e.total--
	p.mu.Unlock()
	_ = conn.Raw.Close()
}

// Clear drains and disposes every queued connection across every
// connection string and resets totals.
func (p *Pool) Clear() {
	p.mu.Lock()
	entries := p.entries
	p.entries = make(map[string]*entry)
	p.mu.Unlock()

	for _, e := range entries {
		for _, c := range e.queue {
			_ = c.Close()
		}
		if e.db != nil {
			_ = e.db.Close()
		}
	}
}

// Max returns the total-count ceiling the pool was constructed with.
func (p *Pool) Max() int {
	return p.max
}

// Statistics returns a snapshot of pool state per connection string.
func (p *Pool) Statistics() map[string]Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]Stats, len(p.entries))
	for cs, e := range p.entries {
		out[cs] = Stats{Total: e.total, Available: len(e.queue), Max: p.max}
	}
	return out
}
