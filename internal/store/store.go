//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package store provides the relational storage backends for the loader and
// the SQL report stage. The table is a disposable replica of the interchange
// file: every load fully replaces prior contents.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/invops/defectaudit/internal/inventory"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// MetadataTable records provenance for the most recent load.
const MetadataTable = "defectaudit_metadata"

// Config selects and configures a storage backend.
type Config struct {
	// Driver is "sqlite" (default) or "postgres".
	Driver string

	// Path is the database file path (sqlite only).
	Path string

	// Connection is the connection string (postgres only).
	Connection string
}

// Resultset is a generic query result. Values carry the driver's native Go
// types (int64, float64, string, nil); rendering is the report's concern.
type Resultset struct {
	Columns []string
	Rows    [][]any
}

// Store is a relational backend holding the inventory transaction table.
type Store interface {
	// Replace drops and recreates the transaction table, then bulk-loads
	// the given records. Loading the same records twice yields the same
	// table as loading them once.
	Replace(ctx context.Context, txns []inventory.Transaction) error

	// Select runs a read-only query and returns the full resultset.
	Select(ctx context.Context, query string) (*Resultset, error)

	// Count returns the number of rows in the transaction table.
	Count(ctx context.Context) (int64, error)

	// SaveMetadata upserts provenance key/value pairs for the last load.
	SaveMetadata(ctx context.Context, meta map[string]string) error

	// Metadata returns all recorded provenance pairs.
	Metadata(ctx context.Context) (map[string]string, error)

	// Close releases the backend's resources.
	Close() error
}

// LoadMetadata builds the provenance pairs recorded after a successful load.
func LoadMetadata(sourceFile string, rows int64, version string) map[string]string {
	return map[string]string{
		"source_file": sourceFile,
		"row_count":   fmt.Sprintf("%d", rows),
		"version":     version,
		"loaded_at":   time.Now().UTC().Format(time.RFC3339),
	}
}

// Open creates a store for the configured driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", DriverSQLite:
		return openSQLite(ctx, cfg.Path)
	case DriverPostgres:
		return openPostgres(ctx, cfg.Connection)
	default:
		return nil, fmt.Errorf("unknown store driver: %s", cfg.Driver)
	}
}
