package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/property-registry/internal/config"
)

// Postgres is a pgx backed ledger storing flattened keys against opaque
// record bytes in a single table. Apply runs inside one transaction.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres establishes a connection pool.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Postgres, error) {
	if cfg.DSN == "" {
		return nil, errors.New("POSTGRES_DSN is required for the postgres ledger backend")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("connected to postgres")
	return &Postgres{pool: pool}, nil
}

const ledgerSchema = `
CREATE TABLE IF NOT EXISTS ledger_records (
    key        TEXT PRIMARY KEY,
    value      BYTEA NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// EnsureSchema creates the backing table when it does not exist yet.
func (p *Postgres) EnsureSchema(ctx context.Context, logger *zap.Logger) error {
	if _, err := p.pool.Exec(ctx, ledgerSchema); err != nil {
		return err
	}
	logger.Info("ledger schema ensured")
	return nil
}

// Get fetches the value stored under key.
func (p *Postgres) Get(ctx context.Context, key Key) ([]byte, error) {
	const query = `SELECT value FROM ledger_records WHERE key=$1`

	var value []byte
	if err := p.pool.QueryRow(ctx, query, key.String()).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrKeyAbsent
		}
		return nil, err
	}
	return value, nil
}

const upsertQuery = `
INSERT INTO ledger_records (key, value, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=NOW()`

// Put stores a single value.
func (p *Postgres) Put(ctx context.Context, key Key, value []byte) error {
	_, err := p.pool.Exec(ctx, upsertQuery, key.String(), value)
	return err
}

// Apply commits all writes in one transaction.
func (p *Postgres) Apply(ctx context.Context, writes []Write) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, w := range writes {
		if _, err := tx.Exec(ctx, upsertQuery, w.Key.String(), w.Value); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Ping verifies Postgres connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	if p == nil || p.pool == nil {
		return errors.New("postgres pool not configured")
	}
	return p.pool.Ping(ctx)
}

// Close releases pool resources.
func (p *Postgres) Close() {
	if p != nil && p.pool != nil {
		p.pool.Close()
	}
}
