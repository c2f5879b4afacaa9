package token

import (
	"testing"
	"time"

	"campus-shop/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager(utils.JWTConfig{
		Secret:        "test-signing-secret",
		ExpiryMinutes: 30,
	})
}

func TestIssueAndVerify(t *testing.T) {
	manager := newTestManager()
	userID := uuid.New()

	tokenStr, err := manager.Issue(userID, 0)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	subject, err := manager.Verify(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, userID, subject)
}

func TestVerifyExpiredToken(t *testing.T) {
	manager := newTestManager()

	tokenStr, err := manager.Issue(uuid.New(), time.Nanosecond)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = manager.Verify(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongKey(t *testing.T) {
	manager := newTestManager()
	other := NewManager(utils.JWTConfig{Secret: "a-different-secret", ExpiryMinutes: 30})

	tokenStr, err := other.Issue(uuid.New(), 0)
	require.NoError(t, err)

	_, err = manager.Verify(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformedToken(t *testing.T) {
	manager := newTestManager()

	for _, tokenStr := range []string{"", "garbage", "a.b.c"} {
		_, err := manager.Verify(tokenStr)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestIssueUsesConfiguredExpiryForZeroTTL(t *testing.T) {
	manager := newTestManager()
	assert.Equal(t, 30*time.Minute, manager.Expiry())

	tokenStr, err := manager.Issue(uuid.New(), 0)
	require.NoError(t, err)

	_, err = manager.Verify(tokenStr)
	assert.NoError(t, err)
}
