package store

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/avrillon/encore/internal/timing"
)

const (
	appName    = "encore"
	dbFileName = "encore.db"
)

// Manager is the sqlite-backed timing store.
type Manager struct {
	db *sql.DB
}

// Verify Manager implements the store contract at compile time.
var _ timing.Store = (*Manager)(nil)

// Open opens the default database under the user's data directory.
func Open() (*Manager, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return OpenAt(dbPath)
}

// OpenAt opens (creating if needed) the database at path.
func OpenAt(path string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

func (m *Manager) Close() error {
	return m.db.Close()
}

// DB exposes the underlying handle for tooling.
func (m *Manager) DB() *sql.DB {
	return m.db
}
