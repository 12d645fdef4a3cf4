package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userdomain "scorekeeper/internal/domain/user"
	"scorekeeper/internal/testutil"
)

func newUser(email, username string) *userdomain.User {
	return &userdomain.User{
		FirstName:    "Paul",
		LastName:     "McBeth",
		Email:        email,
		Username:     username,
		PasswordHash: "hash",
	}
}

func TestCreateAndLookupUser(t *testing.T) {
	repo := NewGorm(testutil.OpenDB(t))
	ctx := context.Background()

	user := newUser("paul@example.com", "paul")
	require.NoError(t, repo.CreateUser(ctx, user))
	require.NotZero(t, user.ID)

	byID, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "paul", byID.Username)

	byEmail, err := repo.GetUserByEmail(ctx, "paul@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	exists, err := repo.UserWithEmailExists(ctx, "paul@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.UserWithUsernameExists(ctx, "someone")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.GetUserByID(ctx, 999)
	assert.ErrorIs(t, err, userdomain.ErrUserNotFound)
}

func TestCreateUserUniqueIndexes(t *testing.T) {
	repo := NewGorm(testutil.OpenDB(t))
	ctx := context.Background()
	require.NoError(t, repo.CreateUser(ctx, newUser("paul@example.com", "paul")))

	assert.ErrorIs(t, repo.CreateUser(ctx, newUser("paul@example.com", "other")), userdomain.ErrUserExists)
	assert.ErrorIs(t, repo.CreateUser(ctx, newUser("other@example.com", "paul")), userdomain.ErrUserExists)
}

func TestUpdateUser(t *testing.T) {
	repo := NewGorm(testutil.OpenDB(t))
	ctx := context.Background()
	first := newUser("paul@example.com", "paul")
	second := newUser("ricky@example.com", "ricky")
	require.NoError(t, repo.CreateUser(ctx, first))
	require.NoError(t, repo.CreateUser(ctx, second))

	second.FirstName = "Ricky"
	second.Email = "paul@example.com"
	assert.ErrorIs(t, repo.UpdateUser(ctx, second), userdomain.ErrEmailTaken)

	second.Email = "wysocki@example.com"
	require.NoError(t, repo.UpdateUser(ctx, second))

	got, err := repo.GetUserByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ricky", got.FirstName)
	assert.Equal(t, "wysocki@example.com", got.Email)
	assert.Equal(t, "ricky", got.Username)
}

func TestDeleteUserCascadesScoreCards(t *testing.T) {
	gormDB := testutil.OpenDB(t)
	repo := NewGorm(gormDB)
	ctx := context.Background()
	user := newUser("paul@example.com", "paul")
	require.NoError(t, repo.CreateUser(ctx, user))

	require.NoError(t, gormDB.Exec("INSERT INTO locations (city, state, lat, lon) VALUES ('X', 'Y', 1, 2)").Error)
	require.NoError(t, gormDB.Exec("INSERT INTO courses (name, location_id) VALUES ('A', 1)").Error)
	require.NoError(t, gormDB.Exec("INSERT INTO layouts (name, course_id) VALUES ('Blue', 1)").Error)
	require.NoError(t, gormDB.Exec("INSERT INTO score_cards (user_id, layout_id, date) VALUES (?, 1, ?)", user.ID, time.Now().UTC()).Error)

	deleted, err := repo.DeleteUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	var cards int64
	require.NoError(t, gormDB.Table("score_cards").Count(&cards).Error)
	assert.Zero(t, cards)

	deleted, err = repo.DeleteUser(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
