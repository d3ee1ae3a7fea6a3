package links

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sqlite3 "modernc.org/sqlite/lib"

	"linkarchive/internal/common"
	"linkarchive/internal/dbx"
	"linkarchive/internal/server/models"
	"linkarchive/internal/timex"
)

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or
// *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, userID uint32, url string) error {
	query := `INSERT INTO links (user_id, url) VALUES (?, ?)`

	if _, err := r.db.ExecContext(ctx, query, userID, url); err != nil {
		// The (user_id, url) primary key may surface as either constraint
		// code depending on table layout.
		if dbx.IsConstraint(err, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE) {
			return &common.DuplicateURLError{URL: url}
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID uint32) ([]models.Link, error) {
	query := `SELECT user_id, url, created, deleted FROM links
	          WHERE user_id = ? ORDER BY created, url`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Link
	for rows.Next() {
		var l models.Link
		var created string
		var deleted sql.NullString

		if err := rows.Scan(&l.UserID, &l.URL, &created, &deleted); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}

		t, err := time.Parse(timex.SQLiteLayout, created)
		if err != nil {
			return nil, fmt.Errorf("parsing created: %w", err)
		}
		l.Created = t

		if deleted.Valid {
			t, err := time.Parse(timex.SQLiteLayout, deleted.String)
			if err != nil {
				return nil, fmt.Errorf("parsing deleted: %w", err)
			}
			l.Deleted = &t
		}

		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
