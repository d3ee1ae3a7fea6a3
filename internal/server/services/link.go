package services

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"linkarchive/internal/common"
	"linkarchive/internal/server/models"
	"linkarchive/internal/server/repositories/links"
)

// LinkService stores and lists a user's bookmarks.
type LinkService struct {
	links links.Repository
}

func NewLinkService(links links.Repository) *LinkService {
	return &LinkService{links: links}
}

// Import stores each line of text as a link for userID. Lines are processed
// in order: a line that is not an absolute URL stops the import right there
// with *common.InvalidURLError (earlier lines stay committed), while a URL
// the user already stores is skipped so duplicates never abort the rest.
func (s *LinkService) Import(ctx context.Context, userID uint32, text string) error {
	for _, line := range splitLines(text) {
		u, err := url.Parse(line)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return &common.InvalidURLError{URL: line}
		}

		if err := s.links.Insert(ctx, userID, u.String()); err != nil {
			var dup *common.DuplicateURLError
			if errors.As(err, &dup) {
				continue
			}
			return err
		}
	}

	return nil
}

// List returns the user's links, oldest first.
func (s *LinkService) List(ctx context.Context, userID uint32) ([]models.Link, error) {
	return s.links.ListByUser(ctx, userID)
}

// splitLines splits on newlines, dropping one trailing newline and any
// carriage returns, but keeping interior empty lines: a blank line in the
// middle of a submission is a user mistake worth reporting.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
