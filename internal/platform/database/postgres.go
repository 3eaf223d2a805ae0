package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	_ "github.com/lib/pq"
)

// ErrUnavailable wraps connection failures so callers can classify them as
// transient connectivity errors rather than domain failures.
var ErrUnavailable = errors.New("database unavailable")

// Provider hands out the shared database handle. Repositories acquire the
// handle through a Provider at the start of every operation.
type Provider interface {
	DB(ctx context.Context) (*sql.DB, error)
}

// Dialer opens and verifies a database handle for the given DSN.
type Dialer func(ctx context.Context, dsn string) (*sql.DB, error)

// Manager memoizes a single database handle for the lifetime of the process.
// The first caller starts the dial; callers arriving while that attempt is in
// flight wait for and share its outcome instead of dialing themselves. A
// failed attempt is not cached: the marker is cleared so the next call dials
// again. Once connected, DB returns the cached handle without I/O.
type Manager struct {
	dsn    string
	dial   Dialer
	logger *slog.Logger

	mu      sync.Mutex
	db      *sql.DB
	attempt *attempt
}

// attempt is a single-assignment future for one dial. done is closed exactly
// once, after db or err has been set.
type attempt struct {
	done chan struct{}
	db   *sql.DB
	err  error
}

// NewManager returns a Manager that dials dsn with lib/pq on first use.
func NewManager(dsn string, logger *slog.Logger) *Manager {
	return NewManagerWithDialer(dsn, logger, pqDial)
}

// NewManagerWithDialer is NewManager with a custom dialer, for tests.
func NewManagerWithDialer(dsn string, logger *slog.Logger, dial Dialer) *Manager {
	return &Manager{dsn: dsn, dial: dial, logger: logger}
}

func pqDial(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// DB returns the shared handle, dialing on first use. Concurrent callers
// during the first dial all observe the same handle or the same failure.
// The caller's context only bounds how long this caller waits; it does not
// cancel the shared attempt for other waiters.
func (m *Manager) DB(ctx context.Context) (*sql.DB, error) {
	m.mu.Lock()
	if m.db != nil {
		db := m.db
		m.mu.Unlock()
		return db, nil
	}
	a := m.attempt
	if a == nil {
		a = &attempt{done: make(chan struct{})}
		m.attempt = a
		go m.run(a)
	}
	m.mu.Unlock()

	select {
	case <-a.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if a.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, a.err)
	}
	return a.db, nil
}

func (m *Manager) run(a *attempt) {
	db, err := m.dial(context.Background(), m.dsn)

	m.mu.Lock()
	if err != nil {
		a.err = err
		// Do not cache the failure: the next DB call starts a fresh attempt.
		m.attempt = nil
	} else {
		a.db = db
		m.db = db
	}
	m.mu.Unlock()
	close(a.done)

	if err != nil {
		m.logger.Error("database connection failed", "err", err)
		return
	}
	m.logger.Info("database connected")
}

// Close closes the cached handle if one was ever established.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}

// Static returns a Provider that always yields db. Used in tests and tools
// that manage their own handle.
func Static(db *sql.DB) Provider {
	return staticProvider{db: db}
}

type staticProvider struct {
	db *sql.DB
}

func (p staticProvider) DB(context.Context) (*sql.DB, error) {
	return p.db, nil
}
