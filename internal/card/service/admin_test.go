package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/martinsdigital/tapcard/internal/card/store"
	"github.com/martinsdigital/tapcard/internal/card/store/drivers/sqlite"
	"github.com/martinsdigital/tapcard/pkg/cryptox"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	s, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestAuthenticate_EnvPlainPassword(t *testing.T) {
	ctx := context.Background()
	svc := &AdminService{Store: newTestStore(t), EnvPassword: "hunter2-hunter2"}

	require.NoError(t, svc.Authenticate(ctx, "hunter2-hunter2"))
	require.ErrorIs(t, svc.Authenticate(ctx, "wrong"), ErrBadCredentials)
}

func TestAuthenticate_EnvPreHashedPassword(t *testing.T) {
	ctx := context.Background()

	hash, err := cryptox.HashPassword("pre-hashed-secret")
	require.NoError(t, err)

	svc := &AdminService{Store: newTestStore(t), EnvPassword: hash}

	require.NoError(t, svc.Authenticate(ctx, "pre-hashed-secret"))
	require.ErrorIs(t, svc.Authenticate(ctx, hash), ErrBadCredentials,
		"submitting the hash itself must not log in")
}

func TestAuthenticate_NoCredentialConfigured(t *testing.T) {
	ctx := context.Background()
	svc := &AdminService{Store: newTestStore(t)}

	require.ErrorIs(t, svc.Authenticate(ctx, "anything"), ErrNoCredential)
}

func TestAuthenticate_PersistedHashWinsOverEnv(t *testing.T) {
	ctx := context.Background()
	svc := &AdminService{
		Store:       newTestStore(t),
		EnvPassword: "env-password-value",
		ResetKey:    "reset-key",
	}

	require.NoError(t, svc.ResetPassword(ctx, "reset-key", "persisted-pass", "persisted-pass"))

	require.NoError(t, svc.Authenticate(ctx, "persisted-pass"))
	require.ErrorIs(t, svc.Authenticate(ctx, "env-password-value"), ErrBadCredentials,
		"env fallback stops applying once a hash is persisted")
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	newService := func(t *testing.T) *AdminService {
		return &AdminService{Store: newTestStore(t), ResetKey: "reset-key"}
	}

	t.Run("happy path persists a hash", func(t *testing.T) {
		svc := newService(t)
		require.NoError(t, svc.ResetPassword(ctx, "reset-key", "new-password", "new-password"))

		ok, err := svc.HasPersistedPassword(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, svc.Authenticate(ctx, "new-password"))
	})

	t.Run("wrong reset key", func(t *testing.T) {
		svc := newService(t)
		err := svc.ResetPassword(ctx, "nope", "new-password", "new-password")
		require.ErrorIs(t, err, ErrBadResetKey)
	})

	t.Run("reset disabled when no key configured", func(t *testing.T) {
		svc := &AdminService{Store: newTestStore(t)}
		err := svc.ResetPassword(ctx, "", "new-password", "new-password")
		require.ErrorIs(t, err, ErrBadResetKey)
	})

	t.Run("too short", func(t *testing.T) {
		svc := newService(t)
		err := svc.ResetPassword(ctx, "reset-key", "short", "short")
		require.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("mismatched confirmation leaves the hash unchanged", func(t *testing.T) {
		svc := newService(t)
		require.NoError(t, svc.ResetPassword(ctx, "reset-key", "first-password", "first-password"))

		err := svc.ResetPassword(ctx, "reset-key", "second-password", "zecond-password")
		require.ErrorIs(t, err, ErrPasswordMismatch)

		require.NoError(t, svc.Authenticate(ctx, "first-password"))
		require.ErrorIs(t, svc.Authenticate(ctx, "second-password"), ErrBadCredentials)
	})
}
