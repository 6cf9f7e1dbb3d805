// internal/database/testing.go
package database

import (
	"fmt"
	"sync/atomic"

	"gorm.io/gorm"

	"github.com/javajoker/protein-search/internal/config"
)

var memoryDBCounter int64

// OpenMemory opens a migrated, isolated in-memory SQLite database. It backs
// the test suites and quick local experiments.
func OpenMemory() (*gorm.DB, error) {
	n := atomic.AddInt64(&memoryDBCounter, 1)
	db, err := Initialize(config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: fmt.Sprintf("memdb%d?mode=memory&cache=shared", n),
		LogLevel:   "silent",
	})
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(db); err != nil {
		Close(db)
		return nil, err
	}
	return db, nil
}
