package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"linkarchive/internal/server/migrations"
	"linkarchive/internal/server/repositories/links"
	"linkarchive/internal/server/repositories/users"
)

type SQLiteRepositoryManager struct {
	db    *sql.DB
	users users.Repository
	links links.Repository
}

func (m *SQLiteRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *SQLiteRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *SQLiteRepositoryManager) Links() links.Repository {
	return m.links
}

func (m *SQLiteRepositoryManager) Close() error {
	return m.db.Close()
}

// RunMigrations applies the embedded goose migrations.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, m.db, ".")
}

// NewSQLiteRepositoryManager opens the database at path and migrates it.
// All store access goes through one serialized connection; the process
// tolerates the throughput cost in exchange for SQLite's transactional
// guarantees without writer contention.
func NewSQLiteRepositoryManager(path string) (*SQLiteRepositoryManager, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	db.SetMaxOpenConns(1)

	m := &SQLiteRepositoryManager{
		db:    db,
		users: users.NewSQLiteRepository(db),
		links: links.NewSQLiteRepository(db),
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
