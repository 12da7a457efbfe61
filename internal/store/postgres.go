//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invops/defectaudit/internal/inventory"
	"github.com/invops/defectaudit/internal/logging"
	"github.com/invops/defectaudit/internal/schema"
)

const postgresBatchSize = 1000

// postgresStore loads the replica table into a PostgreSQL database, for
// teams that want to point other SQL tooling at the result.
type postgresStore struct {
	pool *pgxpool.Pool
}

func openPostgres(ctx context.Context, connString string) (*postgresStore, error) {
	if connString == "" {
		return nil, fmt.Errorf("postgres driver requires a connection string")
	}

	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	// A single-writer batch load has no use for a large pool.
	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	logging.Debug().
		Str("host", config.ConnConfig.Host).
		Uint16("port", config.ConnConfig.Port).
		Str("database", config.ConnConfig.Database).
		Msg("Connecting to database")

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.Info().
		Str("host", config.ConnConfig.Host).
		Str("database", config.ConnConfig.Database).
		Msg("Connected to database")

	return &postgresStore{pool: pool}, nil
}

func (s *postgresStore) Replace(ctx context.Context, txns []inventory.Transaction) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, schema.DropTableSQL()); err != nil {
		return fmt.Errorf("failed to drop table: %w", err)
	}
	if _, err := tx.Exec(ctx, schema.CreateTableSQL(schema.DialectPostgres)); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	insertSQL := schema.InsertSQL(schema.DialectPostgres)
	progress := newLoadProgress(schema.TableName, int64(len(txns)), 10000)

	for start := 0; start < len(txns); start += postgresBatchSize {
		end := min(start+postgresBatchSize, len(txns))

		batch := &pgx.Batch{}
		for i := start; i < end; i++ {
			batch.Queue(insertSQL, rowArgs(&txns[i])...)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert batch at record %d: %w", txns[start].ID, err)
		}
		progress.update(int64(end - start))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit load: %w", err)
	}
	progress.done()
	return nil
}

func (s *postgresStore) Select(ctx context.Context, query string) (*Resultset, error) {
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	rs := &Resultset{Columns: make([]string, len(fields))}
	for i, f := range fields {
		rs.Columns[i] = f.Name
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		rs.Rows = append(rs.Rows, values)
	}
	return rs, rows.Err()
}

func (s *postgresStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM %s", schema.TableName)).Scan(&n)
	return n, err
}

func (s *postgresStore) SaveMetadata(ctx context.Context, meta map[string]string) error {
	if _, err := s.pool.Exec(ctx, createMetadataSQL); err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}
	for key, value := range meta {
		_, err := s.pool.Exec(ctx, `
            INSERT INTO `+MetadataTable+` (key, value) VALUES ($1, $2)
            ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
        `, key, value)
		if err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}
	return nil
}

func (s *postgresStore) Metadata(ctx context.Context) (map[string]string, error) {
	rows, err := s.pool.Query(ctx, "SELECT key, value FROM "+MetadataTable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		meta[key] = value
	}
	return meta, rows.Err()
}

func (s *postgresStore) Close() error {
	s.pool.Close()
	return nil
}
