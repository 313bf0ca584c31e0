package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource reads topics from a call_topics table.
type PostgresSource struct {
	pool *pgxpool.Pool
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS call_topics (
    kind TEXT NOT NULL CHECK (kind IN ('learn', 'trade')),
    label TEXT NOT NULL,
    reward TEXT NOT NULL DEFAULT '',
    position INT NOT NULL DEFAULT 0,
    PRIMARY KEY (kind, label)
);
`

// NewPostgresSource connects using the DSN and ensures the table exists. An
// empty table is seeded with the embedded topics.
func NewPostgresSource(ctx context.Context, dsn string) (*PostgresSource, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is empty")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, err
	}

	src := &PostgresSource{pool: pool}
	if err := src.seedIfEmpty(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("seed call_topics: %w", err)
	}
	return src, nil
}

func (p *PostgresSource) seedIfEmpty(ctx context.Context) error {
	var n int
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM call_topics`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	defaults, err := Embedded().Load(ctx)
	if err != nil {
		return err
	}
	return p.Seed(ctx, defaults)
}

func (p *PostgresSource) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

func (p *PostgresSource) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PostgresSource) Load(ctx context.Context) (*Catalog, error) {
	rows, err := p.pool.Query(ctx, `
SELECT kind, label, reward
FROM call_topics
ORDER BY kind, position, label
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var c Catalog
	for rows.Next() {
		var kind string
		var t Topic
		if err := rows.Scan(&kind, &t.Label, &t.Reward); err != nil {
			return nil, err
		}
		switch kind {
		case KindLearn:
			c.Learn = append(c.Learn, t)
		case KindTrade:
			c.Trade = t
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("call_topics: %w", err)
	}
	return &c, nil
}

// Seed writes c into the table, replacing existing rows.
func (p *PostgresSource) Seed(ctx context.Context, c *Catalog) error {
	if err := c.Validate(); err != nil {
		return err
	}
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM call_topics`); err != nil {
		return err
	}
	for i, t := range c.Learn {
		if _, err := tx.Exec(ctx, `
INSERT INTO call_topics (kind, label, reward, position) VALUES ($1, $2, $3, $4)
`, KindLearn, t.Label, t.Reward, i); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx, `
INSERT INTO call_topics (kind, label, reward, position) VALUES ($1, $2, $3, 0)
`, KindTrade, c.Trade.Label, c.Trade.Reward); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
