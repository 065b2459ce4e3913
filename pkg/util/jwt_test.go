package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-testing"

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name   string
		userID uint
		phone  string
		access string
	}{
		{name: "User access", userID: 1, phone: "0501234567", access: "USER"},
		{name: "Administrator access", userID: 2, phone: "0671234567", access: "ADMINISTRATOR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, expiresAt, err := GenerateToken(tt.userID, tt.phone, tt.access, testSecret, 15*time.Minute)
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)
		})
	}
}

func TestValidateToken(t *testing.T) {
	token, _, err := GenerateToken(123, "0501234567", "MANAGER", testSecret, 15*time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr error
	}{
		{name: "Valid token", token: token, secret: testSecret},
		{name: "Invalid secret", token: token, secret: "wrong-secret", wantErr: ErrInvalidToken},
		{name: "Invalid token format", token: "invalid.token.format", secret: testSecret, wantErr: ErrInvalidToken},
		{name: "Empty token", token: "", secret: testSecret, wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateToken(tt.token, tt.secret)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint(123), claims.UserID)
			assert.Equal(t, "0501234567", claims.Phone)
			assert.Equal(t, "MANAGER", claims.Access)
			assert.Greater(t, claims.TokenTTL(), 14*time.Minute)
		})
	}
}

func TestExpiredToken(t *testing.T) {
	token, _, err := GenerateToken(1, "0501234567", "USER", testSecret, -time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}
