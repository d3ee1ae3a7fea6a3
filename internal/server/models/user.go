// Package models defines the persistent entities of the link archive.
package models

import "time"

// User is a row of the users table. Password holds the encoded argon2id
// hash, never plaintext; it is empty for identities cached from a delegated
// authentication authority. TokenVersion is embedded into issued session
// tokens.
type User struct {
	ID           uint32
	Name         string
	Password     string
	TokenVersion uint32
	Created      time.Time
	Deleted      *time.Time
}
