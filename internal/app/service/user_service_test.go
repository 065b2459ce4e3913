package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newMemoryRevoker() *memoryRevoker {
	return &memoryRevoker{revoked: make(map[string]time.Duration)}
}

func (r *memoryRevoker) Revoke(_ context.Context, token string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[token] = ttl
	return nil
}

func (r *memoryRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[token]
	return ok, nil
}

func newUser(phone string) *model.User {
	return &model.User{
		Phone:     phone,
		Email:     "taras@example.com",
		FirstName: "Taras",
		LastName:  "Shevchenko",
		Address:   model.Address{City: "Kyiv", Street: "Khreshchatyk", Building: 1, PostalCode: 1001},
	}
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)

	id, err := s.users.Create(ctx, newUser("0501234567"), "password123")
	require.NoError(t, err)

	found, err := s.users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.AccessUser, found.Access)
	assert.NotEqual(t, "password123", found.PasswordHash)
	assert.True(t, util.VerifyPassword(found.PasswordHash, "password123"))

	_, err = s.users.Create(ctx, newUser("0501234567"), "another")
	var notCreated *NotCreatedError
	require.True(t, errors.As(err, &notCreated))
	assert.Equal(t, map[string]string{"phone": "user with this phone already exists"}, notCreated.Fields)

	_, err = s.users.Create(ctx, newUser("0507654321"), "")
	require.True(t, errors.As(err, &notCreated))
	assert.Contains(t, notCreated.Fields, "password")
}

func TestUserService_UpdateKeepsPassword(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)

	id, err := s.users.Create(ctx, newUser("0501234567"), "password123")
	require.NoError(t, err)

	update := newUser("0501234567")
	update.ID = id
	update.FirstName = "Lesya"
	_, err = s.users.Update(ctx, update, "")
	require.NoError(t, err)

	found, err := s.users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Lesya", found.FirstName)
	assert.Equal(t, model.AccessUser, found.Access)
	assert.True(t, util.VerifyPassword(found.PasswordHash, "password123"))

	keptHash := found.PasswordHash

	_, err = s.users.Update(ctx, update, "newpassword")
	require.NoError(t, err)
	found, err = s.users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.NotEqual(t, keptHash, found.PasswordHash)

	_, err = s.users.Login(ctx, "0501234567", "newpassword")
	assert.NoError(t, err)
	_, err = s.users.Login(ctx, "0501234567", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)

	id, err := s.users.Create(ctx, newUser("0501234567"), "password123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		phone    string
		password string
		wantErr  error
	}{
		{name: "Valid credentials", phone: "0501234567", password: "password123"},
		{name: "Wrong password", phone: "0501234567", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "Unknown phone", phone: "0509999999", password: "password123", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := s.users.Login(ctx, tt.phone, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, session)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, id, session.User.ID)
			assert.NotEmpty(t, session.Token)
			assert.True(t, session.ExpiresAt.After(time.Now()))
		})
	}
}

func TestUserService_PingAndLogout(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)

	id, err := s.users.Create(ctx, newUser("0501234567"), "password123")
	require.NoError(t, err)
	session, err := s.users.Login(ctx, "0501234567", "password123")
	require.NoError(t, err)

	assert.NoError(t, s.users.Ping(ctx, id, session.Token))
	assert.ErrorIs(t, s.users.Ping(ctx, id+1, session.Token), util.ErrInvalidToken)
	assert.ErrorIs(t, s.users.Ping(ctx, id, "garbage"), util.ErrInvalidToken)

	require.NoError(t, s.users.Logout(ctx, session.Token))
	assert.Greater(t, s.revoker.revoked[session.Token], time.Duration(0))

	assert.ErrorIs(t, s.users.Ping(ctx, id, session.Token), util.ErrRevokedToken)
	_, err = s.users.Authenticate(ctx, session.Token)
	assert.ErrorIs(t, err, util.ErrRevokedToken)
}

func TestUserService_LogoutWithoutRevoker(t *testing.T) {
	users := NewUserService(nil, nil, "test-secret", time.Hour)

	err := users.Logout(context.Background(), "token")
	assert.ErrorIs(t, err, ErrRevocationDisabled)
}
