package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite3 "modernc.org/sqlite/lib"

	"linkarchive/internal/common"
	"linkarchive/internal/dbx"
	"linkarchive/internal/server/models"
	"linkarchive/internal/timex"
)

// SQLiteRepository implements Repository over *sql.DB. Reads go through the
// dbx.DBTX query surface so they work unchanged inside a transaction.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const userColumns = "id, name, password, token_version, created, deleted"

func (r *SQLiteRepository) Create(ctx context.Context, name, passwordHash string) (*models.User, error) {
	query := `INSERT INTO users (name, password) VALUES (?, ?) RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(ctx, query, name, passwordHash))
	if err != nil {
		if dbx.IsConstraint(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE) {
			return nil, &common.DuplicateNameError{Name: name}
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id uint32) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLiteRepository) GetByName(ctx context.Context, name string) (*models.User, error) {
	return getByName(ctx, r.db, name)
}

// UpsertByName inserts the name if absent and returns the row, atomically, so
// a concurrent removal cannot slip between the insert and the read.
func (r *SQLiteRepository) UpsertByName(ctx context.Context, name string) (*models.User, error) {
	var user *models.User

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		// The local row is only an identity cache here; the delegated
		// authority owns the credentials, so password stays empty.
		query := `INSERT INTO users (name, password) VALUES (?, '')
		          ON CONFLICT (name) DO NOTHING`

		if _, err := tx.ExecContext(ctx, query, name); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		u, err := getByName(ctx, tx, name)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func getByName(ctx context.Context, db dbx.DBTX, name string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE name = ?`

	user, err := scanUser(db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// scanUser reads one user row, converting the TEXT timestamps the schema
// stores into time.Time values.
func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var created string
	var deleted sql.NullString

	if err := row.Scan(&u.ID, &u.Name, &u.Password, &u.TokenVersion, &created, &deleted); err != nil {
		return nil, err
	}

	t, err := time.Parse(timex.SQLiteLayout, created)
	if err != nil {
		return nil, fmt.Errorf("parsing created: %w", err)
	}
	u.Created = t

	if deleted.Valid {
		t, err := time.Parse(timex.SQLiteLayout, deleted.String)
		if err != nil {
			return nil, fmt.Errorf("parsing deleted: %w", err)
		}
		u.Deleted = &t
	}

	return u, nil
}
