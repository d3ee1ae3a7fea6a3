// Package repomanager wires the database handle and the repository
// constructors together and runs schema migrations.
package repomanager

import (
	"database/sql"

	"linkarchive/internal/server/repositories/links"
	"linkarchive/internal/server/repositories/users"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	Links() links.Repository
	Close() error
}
