package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/martinsdigital/tapcard/internal/card/store"
	"github.com/martinsdigital/tapcard/pkg/cryptox"
)

// settingAdminPasswordHash is the settings key holding the persisted
// argon2id hash of the admin password.
const settingAdminPasswordHash = "admin_password_hash"

// MinPasswordLength is enforced by the password-reset flow.
const MinPasswordLength = 8

var (
	ErrBadCredentials   = errors.New("service: bad admin credentials")
	ErrNoCredential     = errors.New("service: no admin credential configured")
	ErrBadResetKey      = errors.New("service: bad reset key")
	ErrPasswordTooShort = fmt.Errorf("service: password shorter than %d characters", MinPasswordLength)
	ErrPasswordMismatch = errors.New("service: password confirmation does not match")
)

// AdminService checks the admin password and manages the persisted hash.
//
// The credential is resolved in order: a hash persisted via the reset flow
// wins; otherwise the environment-supplied value is used, which may itself
// be a plaintext password or a pre-hashed value (detected by the argon2id
// prefix).
type AdminService struct {
	Store store.Store

	// EnvPassword is the ADMIN_PASSWORD fallback; plain or pre-hashed.
	EnvPassword string
	// ResetKey guards the out-of-band password reset flow.
	ResetKey string
}

// Authenticate verifies the submitted password. ErrBadCredentials on
// mismatch, ErrNoCredential when no credential exists at all.
func (s *AdminService) Authenticate(ctx context.Context, password string) error {
	hash, err := s.Store.Settings().Get(ctx, settingAdminPasswordHash)
	switch {
	case err == nil:
		return s.verifyHash(password, hash)
	case errors.Is(err, store.ErrNotFound):
		// fall through to environment credential
	default:
		return err
	}

	if s.EnvPassword == "" {
		return ErrNoCredential
	}
	if cryptox.IsHash(s.EnvPassword) {
		return s.verifyHash(password, s.EnvPassword)
	}
	if !cryptox.ConstantTimeEquals(password, s.EnvPassword) {
		return ErrBadCredentials
	}
	return nil
}

// ResetPassword sets a new persisted admin password hash. It is keyed
// independently of the login flow: the caller must present the configured
// reset key, the new password must meet the minimum length, and the
// confirmation must match. Nothing is persisted on any failure.
func (s *AdminService) ResetPassword(ctx context.Context, resetKey, newPassword, confirm string) error {
	if s.ResetKey == "" || !cryptox.ConstantTimeEquals(resetKey, s.ResetKey) {
		return ErrBadResetKey
	}
	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	return s.Store.Settings().Set(ctx, settingAdminPasswordHash, hash)
}

// HasPersistedPassword reports whether a hash set via the reset flow
// exists.
func (s *AdminService) HasPersistedPassword(ctx context.Context) (bool, error) {
	_, err := s.Store.Settings().Get(ctx, settingAdminPasswordHash)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *AdminService) verifyHash(password, hash string) error {
	err := cryptox.VerifyPassword(password, hash)
	if errors.Is(err, cryptox.ErrMismatch) {
		return ErrBadCredentials
	}
	return err
}
