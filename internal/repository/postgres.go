package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

const pingTimeout = 5 * time.Second

// PoolConfig sizes the connection pool. A zero field leaves the database/sql
// default in place.
type PoolConfig struct {
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetimeS int
	ConnMaxIdleTimeS int
}

func (p PoolConfig) apply(db *sql.DB) {
	if p.MaxOpenConns > 0 {
		db.SetMaxOpenConns(p.MaxOpenConns)
	}
	if p.MaxIdleConns > 0 {
		db.SetMaxIdleConns(p.MaxIdleConns)
	}
	if p.ConnMaxLifetimeS > 0 {
		db.SetConnMaxLifetime(time.Duration(p.ConnMaxLifetimeS) * time.Second)
	}
	if p.ConnMaxIdleTimeS > 0 {
		db.SetConnMaxIdleTime(time.Duration(p.ConnMaxIdleTimeS) * time.Second)
	}
}

// OpenPostgres opens the import database and verifies it answers a ping.
func OpenPostgres(ctx context.Context, databaseURL string, pool PoolConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("OpenPostgres: open: %w", err)
	}
	pool.apply(db)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenPostgres: ping: %w", err)
	}
	return db, nil
}
