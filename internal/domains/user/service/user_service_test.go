package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/domains/user"
	"bookcatalog/internal/shared/apperror"
	"bookcatalog/pkg/token"
)

// fakeUserRepo is an in-memory user.Repository. A non-nil lookupErr is
// returned from GetByUsername to simulate a failing store.
type fakeUserRepo struct {
	users     map[uuid.UUID]*user.User
	lookupErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*user.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) (*user.User, error) {
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]user.User, error) {
	var all []user.User
	for _, u := range r.users {
		all = append(all, *u)
	}
	return all, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *user.User) (*user.User, error) {
	if _, ok := r.users[u.ID]; !ok {
		return nil, user.ErrUserNotFound
	}
	copied := *u
	r.users[u.ID] = &copied
	return u, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func newService(repo user.Repository) user.Service {
	return NewUserService(repo, token.NewManager("test-secret", time.Hour))
}

func registerRequest() user.RegisterRequest {
	return user.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Age:      30,
		Role:     user.RoleClient,
		Password: "s3cret-pass",
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	created, err := svc.Register(context.Background(), registerRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, created.PasswordHash)
	assert.NotEqual(t, "s3cret-pass", created.PasswordHash, "plaintext must never persist")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	req := registerRequest()
	req.Email = "other@example.com"
	_, err = svc.Register(context.Background(), req)

	assert.ErrorIs(t, err, user.ErrUsernameExists)
	assert.Equal(t, apperror.Conflict, apperror.KindOf(err))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	req := registerRequest()
	req.Username = "bob"
	_, err = svc.Register(context.Background(), req)

	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := newService(newFakeUserRepo())

	req := registerRequest()
	req.Role = user.Role("superuser")

	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), user.LoginRequest{
		Username: "alice",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	identity, err := token.NewManager("test-secret", time.Hour).Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, "client", identity.Role)
}

func TestLoginCollapsesFailures(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	// Unknown user and wrong password are indistinguishable.
	_, errUnknown := svc.Login(context.Background(), user.LoginRequest{
		Username: "nobody", Password: "whatever123",
	})
	_, errWrongPass := svc.Login(context.Background(), user.LoginRequest{
		Username: "alice", Password: "wrong-password",
	})

	assert.ErrorIs(t, errUnknown, user.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, user.ErrInvalidCredentials)
}

func TestLoginStoreFailureIsNotACredentialError(t *testing.T) {
	repo := newFakeUserRepo()
	repo.lookupErr = errors.New("connection refused")
	svc := newService(repo)

	_, err := svc.Login(context.Background(), user.LoginRequest{
		Username: "alice", Password: "s3cret-pass",
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, user.ErrInvalidCredentials,
		"a store outage must not look like bad credentials")
	assert.Equal(t, apperror.Unexpected, apperror.KindOf(err))
}

func TestCreateDefaultsRoleToClient(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	created, err := svc.Create(context.Background(), user.CreateUserRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Age:      25,
		Password: "another-pass",
	})

	require.NoError(t, err)
	assert.Equal(t, user.RoleClient, created.Role)
}

func TestUpdateMergesPartialPayload(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	created, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	age := 31
	updated, err := svc.Update(context.Background(), created.ID, user.UpdateUserRequest{Age: &age})

	require.NoError(t, err)
	assert.Equal(t, 31, updated.Age)
	assert.Equal(t, "alice", updated.Username, "untouched fields survive the merge")
}

func TestDeleteMissingUser(t *testing.T) {
	svc := newService(newFakeUserRepo())

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
