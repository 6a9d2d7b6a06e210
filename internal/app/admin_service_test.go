package app

import (
	"context"
	"testing"

	"subscription_notifier/internal/domain/admin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdminRepo struct {
	admins []*admin.Admin
}

func (f *fakeAdminRepo) Create(ctx context.Context, a *admin.Admin) error {
	a.ID = int64(len(f.admins) + 1)
	f.admins = append(f.admins, a)
	return nil
}

func (f *fakeAdminRepo) GetByUsername(ctx context.Context, username string) (*admin.Admin, error) {
	for _, a := range f.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, admin.ErrNotFound
}

func (f *fakeAdminRepo) Count(ctx context.Context) (int, error) {
	return len(f.admins), nil
}

func TestCreateInitialAdmin(t *testing.T) {
	repo := &fakeAdminRepo{}
	svc := NewAdminService(repo, "s3cret")

	created, err := svc.CreateInitialAdmin(context.Background(), "s3cret", "admin", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "admin", created.Username)
	assert.NotEqual(t, "hunter2", created.PasswordHash)

	// Second bootstrap attempt is refused.
	_, err = svc.CreateInitialAdmin(context.Background(), "s3cret", "admin2", "hunter2")
	assert.ErrorIs(t, err, ErrAdminAlreadyExists)
}

func TestCreateInitialAdmin_TokenChecks(t *testing.T) {
	repo := &fakeAdminRepo{}

	_, err := NewAdminService(repo, "").CreateInitialAdmin(context.Background(), "anything", "admin", "pw")
	assert.ErrorIs(t, err, ErrSetupDisabled)

	_, err = NewAdminService(repo, "s3cret").CreateInitialAdmin(context.Background(), "wrong", "admin", "pw")
	assert.ErrorIs(t, err, ErrSetupUnauthorized)

	_, err = NewAdminService(repo, "s3cret").CreateInitialAdmin(context.Background(), "s3cret", "admin", "")
	require.Error(t, err)
}

func TestVerifyCredentials(t *testing.T) {
	repo := &fakeAdminRepo{}
	svc := NewAdminService(repo, "s3cret")

	_, err := svc.CreateInitialAdmin(context.Background(), "s3cret", "admin", "hunter2")
	require.NoError(t, err)

	a, err := svc.VerifyCredentials(context.Background(), "admin", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "admin", a.Username)

	_, err = svc.VerifyCredentials(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.VerifyCredentials(context.Background(), "nobody", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
