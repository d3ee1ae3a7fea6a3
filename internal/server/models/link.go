package models

import "time"

// Link is a stored bookmark. (UserID, URL) is unique per user.
type Link struct {
	UserID  uint32
	URL     string
	Created time.Time
	Deleted *time.Time
}
