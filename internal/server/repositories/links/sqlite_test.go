package links_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"linkarchive/internal/common"
	"linkarchive/internal/server/repositories/repomanager"
)

func newTestRepos(t *testing.T) *repomanager.SQLiteRepositoryManager {
	t.Helper()
	repos, err := repomanager.NewSQLiteRepositoryManager(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return repos
}

func TestInsertAndList(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	user, err := repos.Users().Create(ctx, "alice", "hash")
	require.NoError(t, err)

	require.NoError(t, repos.Links().Insert(ctx, user.ID, "http://one.example/"))
	require.NoError(t, repos.Links().Insert(ctx, user.ID, "http://two.example/"))

	list, err := repos.Links().ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "http://one.example/", list[0].URL)
	require.Equal(t, "http://two.example/", list[1].URL)
	require.Equal(t, user.ID, list[0].UserID)
}

func TestInsert_Duplicate(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	user, err := repos.Users().Create(ctx, "alice", "hash")
	require.NoError(t, err)

	require.NoError(t, repos.Links().Insert(ctx, user.ID, "http://one.example/"))

	err = repos.Links().Insert(ctx, user.ID, "http://one.example/")
	var dup *common.DuplicateURLError
	require.True(t, errors.As(err, &dup), "expected DuplicateURLError, got %v", err)
	require.Equal(t, "http://one.example/", dup.URL)
}

func TestList_ScopedToUser(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	alice, err := repos.Users().Create(ctx, "alice", "hash")
	require.NoError(t, err)
	bob, err := repos.Users().Create(ctx, "bob", "hash")
	require.NoError(t, err)

	// The same URL under two users is two distinct rows, not a duplicate.
	require.NoError(t, repos.Links().Insert(ctx, alice.ID, "http://shared.example/"))
	require.NoError(t, repos.Links().Insert(ctx, bob.ID, "http://shared.example/"))
	require.NoError(t, repos.Links().Insert(ctx, bob.ID, "http://bob-only.example/"))

	aliceLinks, err := repos.Links().ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceLinks, 1)

	bobLinks, err := repos.Links().ListByUser(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobLinks, 2)
}

func TestList_Empty(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	user, err := repos.Users().Create(ctx, "alice", "hash")
	require.NoError(t, err)

	list, err := repos.Links().ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, list)
}
