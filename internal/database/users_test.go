package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/stock-analysis-service/internal/models"
)

func createTestUser(t *testing.T, tdb *TestDB, username string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$10$fakehashfakehashfakehash",
		Role:         role,
	}
	require.NoError(t, tdb.CreateUser(user))
	return user
}

func TestUsersRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	t.Run("CreateUser assigns id and created_at", func(t *testing.T) {
		testDB.TruncateAll(t)

		user := createTestUser(t, testDB, "alice", models.RoleAnalyst)
		assert.NotZero(t, user.ID)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("CreateUser rejects duplicate username", func(t *testing.T) {
		testDB.TruncateAll(t)

		createTestUser(t, testDB, "alice", models.RoleAnalyst)
		dup := &models.User{
			Username:     "alice",
			Email:        "other@example.com",
			PasswordHash: "hash",
			Role:         models.RoleInvestor,
		}
		err := testDB.CreateUser(dup)
		require.Error(t, err)
	})

	t.Run("GetUserByUsername retrieves user", func(t *testing.T) {
		testDB.TruncateAll(t)

		created := createTestUser(t, testDB, "bob", models.RoleInvestor)
		retrieved, err := testDB.GetUserByUsername("bob")
		require.NoError(t, err)
		assert.Equal(t, created.ID, retrieved.ID)
		assert.Equal(t, models.RoleInvestor, retrieved.Role)
		assert.Equal(t, "bob@example.com", retrieved.Email)
	})

	t.Run("GetUserByID returns error for non-existent ID", func(t *testing.T) {
		testDB.TruncateAll(t)

		_, err := testDB.GetUserByID(99999)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("GetUsersByRole filters by role", func(t *testing.T) {
		testDB.TruncateAll(t)

		createTestUser(t, testDB, "carol", models.RoleAnalyst)
		createTestUser(t, testDB, "dan", models.RoleAnalyst)
		createTestUser(t, testDB, "erin", models.RoleInvestor)

		analysts, err := testDB.GetUsersByRole(models.RoleAnalyst)
		require.NoError(t, err)
		assert.Len(t, analysts, 2)
		assert.Equal(t, "carol", analysts[0].Username)
		assert.Equal(t, "dan", analysts[1].Username)
	})
}
