package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"inventory_backend/internal/feature/auth/domain/entity"
	"inventory_backend/internal/feature/auth/usecase"
	"inventory_backend/internal/platform/db/dbtest"
)

// setupTestDB prepares an in-memory SQLite database with the users table.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return dbtest.Open(t, &entity.User{})
}

func newUser(username, email string) *entity.User {
	return &entity.User{Username: username, Email: email, Password: "hashed_password"}
}

func TestNewUserRepository(t *testing.T) {
	db := setupTestDB(t)

	repo := NewUserRepository(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestUserGorm_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		user := newUser("alice", "alice@example.com")

		before := time.Now()
		err := repo.Create(context.Background(), user)

		require.NoError(t, err, "failed to create user")
		assert.NotEqual(t, uuid.Nil, user.ID, "ID is not set")
		assert.False(t, user.CreatedAt.Before(before.Add(-time.Second)), "CreatedAt is not set")
	})

	t.Run("keeps caller supplied ID", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		id := uuid.New()
		user := newUser("alice", "alice@example.com")
		user.ID = id

		require.NoError(t, repo.Create(context.Background(), user))
		assert.Equal(t, id, user.ID)
	})

	tests := []struct {
		name   string
		second *entity.User
	}{
		{"duplicate email", newUser("bob", "dup@example.com")},
		{"duplicate username", newUser("dup", "other@example.com")},
	}
	for _, tt := range tests {
		t.Run(tt.name+" error", func(t *testing.T) {
			repo := NewUserRepository(setupTestDB(t))
			require.NoError(t, repo.Create(context.Background(), newUser("dup", "dup@example.com")))

			err := repo.Create(context.Background(), tt.second)

			assert.ErrorIs(t, err, usecase.ErrUserAlreadyExists)
		})
	}

	t.Run("nil user error", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		err := repo.Create(context.Background(), nil)

		assert.Error(t, err, "should return error for nil user")
	})
}

func TestUserGorm_FindByEmail(t *testing.T) {
	t.Run("find correct user when multiple users exist", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		users := []*entity.User{
			newUser("user1", "user1@example.com"),
			newUser("user2", "user2@example.com"),
			newUser("user3", "user3@example.com"),
		}
		for _, u := range users {
			require.NoError(t, repo.Create(context.Background(), u), "failed to create test data")
		}

		found, err := repo.FindByEmail(context.Background(), "user2@example.com")

		require.NoError(t, err, "failed to find user")
		assert.Equal(t, users[1].ID, found.ID, "ID does not match")
		assert.Equal(t, "user2", found.Username)
		assert.Equal(t, "hashed_password", found.Password)
	})

	t.Run("email not found error", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		found, err := repo.FindByEmail(context.Background(), "notfound@example.com")

		assert.Nil(t, found, "user should be nil")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound, "should return ErrUserNotFound")
	})
}

func TestUserGorm_FindByEmailOrUsername(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	alice := newUser("alice", "alice@example.com")
	require.NoError(t, repo.Create(context.Background(), alice))

	tests := []struct {
		name     string
		email    string
		username string
		wantErr  error
	}{
		{"matches by email", "alice@example.com", "someone", nil},
		{"matches by username", "someone@example.com", "alice", nil},
		{"no match", "someone@example.com", "someone", usecase.ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.FindByEmailOrUsername(context.Background(), tt.email, tt.username)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, alice.ID, found.ID)
		})
	}
}

func TestUserGorm_FindByUsername(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	alice := newUser("alice", "alice@example.com")
	require.NoError(t, repo.Create(context.Background(), alice))

	found, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)

	_, err = repo.FindByUsername(context.Background(), "bob")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}

func TestUserGorm_ExistsByEmailOrUsername(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	require.NoError(t, repo.Create(context.Background(), newUser("alice", "alice@example.com")))

	tests := []struct {
		name     string
		email    string
		username string
		want     bool
	}{
		{"email taken", "alice@example.com", "someone", true},
		{"username taken", "someone@example.com", "alice", true},
		{"both free", "someone@example.com", "someone", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ExistsByEmailOrUsername(context.Background(), tt.email, tt.username)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserGorm_FindByID(t *testing.T) {
	t.Run("find user by ID successfully", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		expected := newUser("findbyid", "findbyid@example.com")
		require.NoError(t, repo.Create(context.Background(), expected), "failed to create test data")

		found, err := repo.FindByID(context.Background(), expected.ID)

		require.NoError(t, err, "failed to find user")
		assert.Equal(t, expected.ID, found.ID, "ID does not match")
		assert.Equal(t, expected.Email, found.Email, "email does not match")
		assert.Equal(t, expected.CreatedAt.Unix(), found.CreatedAt.Unix(), "CreatedAt does not match")
	})

	t.Run("ID not found error", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		found, err := repo.FindByID(context.Background(), uuid.New())

		assert.Nil(t, found, "user should be nil")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound, "should return ErrUserNotFound")
	})
}
