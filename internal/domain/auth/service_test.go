package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joinerpro/internal/core/apperror"
	"joinerpro/internal/core/id"
)

type fakeUserRepo struct {
	byName map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byName: make(map[string]*User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *User) error {
	if _, ok := f.byName[u.Username]; ok {
		return apperror.NewDuplicate("user", "username", u.Username)
	}
	cp := *u
	f.byName[u.Username] = &cp
	return nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	u, ok := f.byName[username]
	if !ok {
		return nil, apperror.NewNotFound("user", username)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, userID id.ID) (*User, error) {
	for _, u := range f.byName {
		if u.ID == userID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("user", userID.String())
}

func newAuthService(t *testing.T) (*Service, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	return NewService(repo, NewTokenManager("test-secret")), repo
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "admin", "s3cret", RoleAdmin)
	require.NoError(t, err)

	res, err := svc.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "admin", res.User.Username)

	claims, err := NewTokenManager("test-secret").Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, res.User.ID.String(), claims.Subject)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "admin", "s3cret", RoleAdmin)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "admin", "wrong")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), "ghost", "whatever")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, repo := newAuthService(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, "former", "s3cret", RoleUser)
	require.NoError(t, err)
	repo.byName[u.Username].Active = false

	_, err = svc.Login(ctx, "former", "s3cret")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestVerify_WrongSecret(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "admin", "s3cret", RoleAdmin)
	require.NoError(t, err)
	res, err := svc.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)

	_, err = NewTokenManager("other-secret").Verify(res.Token)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}
