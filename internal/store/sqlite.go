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
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/invops/defectaudit/internal/inventory"
	"github.com/invops/defectaudit/internal/logging"
	"github.com/invops/defectaudit/internal/schema"
)

// DefaultSQLitePath is the default database file, next to the interchange
// file.
const DefaultSQLitePath = "inventory_analysis.db"

// sqliteStore is the default embedded backend.
type sqliteStore struct {
	db   *sql.DB
	path string
}

func openSQLite(ctx context.Context, path string) (*sqliteStore, error) {
	if path == "" {
		path = DefaultSQLitePath
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	logging.Debug().Str("path", path).Msg("Opened sqlite database")
	return &sqliteStore{db: db, path: path}, nil
}

func (s *sqliteStore) Replace(ctx context.Context, txns []inventory.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schema.DropTableSQL()); err != nil {
		return fmt.Errorf("failed to drop table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, schema.CreateTableSQL(schema.DialectSQLite)); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, schema.InsertSQL(schema.DialectSQLite))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	progress := newLoadProgress(schema.TableName, int64(len(txns)), 10000)
	for i := range txns {
		if _, err := stmt.ExecContext(ctx, rowArgs(&txns[i])...); err != nil {
			return fmt.Errorf("failed to insert record %d: %w", txns[i].ID, err)
		}
		progress.update(1)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load: %w", err)
	}
	progress.done()
	return nil
}

func (s *sqliteStore) Select(ctx context.Context, query string) (*Resultset, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	rs := &Resultset{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		rs.Rows = append(rs.Rows, values)
	}
	return rs, rows.Err()
}

func (s *sqliteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM %s", schema.TableName)).Scan(&n)
	return n, err
}

func (s *sqliteStore) SaveMetadata(ctx context.Context, meta map[string]string) error {
	if _, err := s.db.ExecContext(ctx, createMetadataSQL); err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}
	for key, value := range meta {
		_, err := s.db.ExecContext(ctx, `
            INSERT INTO `+MetadataTable+` (key, value) VALUES (?, ?)
            ON CONFLICT (key) DO UPDATE SET value = excluded.value
        `, key, value)
		if err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}
	return nil
}

func (s *sqliteStore) Metadata(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT key, value FROM "+MetadataTable)
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

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

const createMetadataSQL = `
CREATE TABLE IF NOT EXISTS ` + MetadataTable + ` (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// rowArgs renders one transaction in schema column order. Booleans become
// 0/1 and dates ISO-8601 text, per the schema's storage conventions.
func rowArgs(t *inventory.Transaction) []any {
	return []any{
		t.ID,
		t.Date.Format("2006-01-02"),
		t.Warehouse,
		t.SKU,
		t.ExpectedQty,
		t.ActualQty,
		t.Location,
		t.OperatorID,
		string(t.EntryMethod),
		t.QtyVariance,
		boolToInt(t.HasDefect),
		string(t.DefectType),
		boolToInt(t.IsDamaged),
		boolToInt(t.LabelMissing),
		t.WarehouseDefectRate,
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
