package jwt

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("secret", time.Hour)

	token, err := svc.GenerateToken(7, "admin", "Rosa")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "Rosa", claims.FirstName)
	assert.Equal(t, issuer, claims.Issuer)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := New("secret", time.Hour).GenerateToken(1, "admin", "")
	require.NoError(t, err)

	_, err = New("other", time.Hour).ValidateToken(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestValidateToken_Expired(t *testing.T) {
	svc := New("secret", -time.Minute)
	token, err := svc.GenerateToken(1, "admin", "")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}
