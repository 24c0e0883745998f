package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/stock-analysis-service/internal/models"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		role    models.UserRole
		op      Operation
		allowed bool
	}{
		{models.RoleAnalyst, OpSaveReport, true},
		{models.RoleAnalyst, OpListReports, true},
		{models.RoleAnalyst, OpCopyToPortfolio, false},
		{models.RoleAnalyst, OpClosePosition, false},
		{models.RoleInvestor, OpCopyToPortfolio, true},
		{models.RoleInvestor, OpClosePosition, true},
		{models.RoleInvestor, OpListPositions, true},
		{models.RoleInvestor, OpSaveReport, false},
		{models.UserRole("admin"), OpSaveReport, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, Allowed(tt.role, tt.op), "%s/%s", tt.role, tt.op)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPassword("s3cret", hash))
	assert.False(t, CheckPassword("wrong", hash))
}

func TestTokenManager(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	user := &models.User{ID: 7, Username: "carol", Role: models.RoleAnalyst}

	t.Run("issue and verify round trip", func(t *testing.T) {
		token, err := manager.Issue(user)
		require.NoError(t, err)

		claims, err := manager.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, 7, claims.UserID)
		assert.Equal(t, models.RoleAnalyst, claims.Role)
		assert.Equal(t, "carol", claims.Subject)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		expired := NewTokenManager("test-secret", -time.Minute)
		token, err := expired.Issue(user)
		require.NoError(t, err)

		_, err = manager.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other := NewTokenManager("other-secret", time.Hour)
		token, err := other.Issue(user)
		require.NoError(t, err)

		_, err = manager.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}
