package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/eugenenazirov/binpack/internal/experiment"
)

const createResultsTable = `
CREATE TABLE IF NOT EXISTS packing_results (
	id          BIGSERIAL PRIMARY KEY,
	instance    TEXT        NOT NULL,
	heuristic   TEXT        NOT NULL,
	items       INTEGER     NOT NULL,
	bins_used   INTEGER     NOT NULL,
	best_known  INTEGER     NOT NULL,
	elapsed_ns  BIGINT      NOT NULL,
	error       TEXT        NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStorage persists results in a packing_results table.
type PostgresStorage struct {
	db *sql.DB
}

// OpenPostgres connects through the pgx driver and verifies the connection.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("verify postgres connection: %w", err)
	}

	return &PostgresStorage{db: db}, nil
}

// Migrate creates the results table when it does not exist yet.
func (s *PostgresStorage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createResultsTable); err != nil {
		return fmt.Errorf("create packing_results: %w", err)
	}
	return nil
}

func (s *PostgresStorage) SaveResult(ctx context.Context, r experiment.Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO packing_results (instance, heuristic, items, bins_used, best_known, elapsed_ns, error)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.Instance, r.Heuristic, r.Items, r.BinsUsed, r.BestKnown, r.Elapsed.Nanoseconds(), r.Err,
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

func (s *PostgresStorage) ListResults(ctx context.Context) ([]experiment.Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT instance, heuristic, items, bins_used, best_known, elapsed_ns, error
		 FROM packing_results ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var results []experiment.Result
	for rows.Next() {
		var (
			r       experiment.Result
			elapsed int64
		)
		if err := rows.Scan(&r.Instance, &r.Heuristic, &r.Items, &r.BinsUsed, &r.BestKnown, &elapsed, &r.Err); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.Elapsed = time.Duration(elapsed)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return results, nil
}

// Close releases the connection pool.
func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
