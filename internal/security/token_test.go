package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret-that-is-long-enough-0123")

	token, err := m.GenerateActorToken(7, "counter staff")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int32(7), claims.ActorID)
	assert.Equal(t, "counter staff", claims.Name)
	assert.Equal(t, "rentdesk", claims.Issuer)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	m := NewTokenManager("test-secret-that-is-long-enough-0123")
	other := NewTokenManager("a-completely-different-secret-456789")

	token, err := m.GenerateActorToken(7, "")
	assert.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	m := NewTokenManager("test-secret-that-is-long-enough-0123")

	_, err := m.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
