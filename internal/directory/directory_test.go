package directory_test

import (
	"context"
	"testing"

	"github.com/rudransh-shrivastava/peer-chat/internal/conversation"
	"github.com/rudransh-shrivastava/peer-chat/internal/directory"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *directory.Store {
	t.Helper()
	db, err := directory.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return directory.NewStore(db)
}

func TestStore_RegisterAndResolve(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Register(ctx, "bob", "127.0.0.1", 9001))

	addr, err := s.Resolve(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, directory.Address{Host: "127.0.0.1", Port: 9001}, addr)
	require.Equal(t, "127.0.0.1:9001", addr.String())
	require.Equal(t, "127.0.0.1:6000", addr.WithPort(6000).String())
}

func TestStore_RegisterMovesExistingIdentity(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Register(ctx, "bob", "10.0.0.1", 5000))
	require.NoError(t, s.Register(ctx, "bob", "10.0.0.2", 5001))

	addr, err := s.Resolve(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, "10.0.0.2:5001", addr.String())

	users, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestStore_ResolveNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Resolve(context.Background(), "ghost")
	require.ErrorIs(t, err, directory.ErrNotFound)
}

func TestStore_Remove(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Register(ctx, "bob", "127.0.0.1", 5000))
	require.NoError(t, s.Remove(ctx, "bob"))
	require.ErrorIs(t, s.Remove(ctx, "bob"), directory.ErrNotFound)

	_, err := s.Find(ctx, "bob")
	require.ErrorIs(t, err, directory.ErrNotFound)
}

func TestStore_ListSorted(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Register(ctx, "carol", "127.0.0.3", 5000))
	require.NoError(t, s.Register(ctx, "alice", "127.0.0.1", 5000))
	require.NoError(t, s.Register(ctx, "bob", "127.0.0.2", 5000))

	users, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.Equal(t, "alice", users[0].Username)
	require.Equal(t, "carol", users[2].Username)
}

func TestStore_RegisterValidates(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.Error(t, s.Register(ctx, "", "127.0.0.1", 5000))
	require.Error(t, s.Register(ctx, "bob", "", 5000))
	require.Error(t, s.Register(ctx, "bob", "127.0.0.1", 0))
	require.Error(t, s.Register(ctx, "bob", "127.0.0.1", 70000))
}

func TestStore_RegisterRejectsUnkeyableIdentity(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"", "a_b", "a/b", `a\b`, "..", "tab\tname", "bad\xff"} {
		err := s.Register(ctx, id, "127.0.0.1", 5000)
		require.ErrorIs(t, err, conversation.ErrInvalidIdentity, "identity %q", id)
	}

	users, err := s.List(ctx)
	require.NoError(t, err)
	require.Empty(t, users)
}
