package seed

import (
	"testing"

	"campusnet/internal/database"
	"campusnet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeederRun(t *testing.T) {
	db, err := database.ConnectSQLite(":memory:")
	require.NoError(t, err)

	s := NewSeeder(db)
	require.NoError(t, s.Run(Options{NumUsers: 10, NumPosts: 25, ShouldClean: true}))

	var userCount, postCount, friendshipCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	require.NoError(t, db.Model(&models.Friendship{}).Count(&friendshipCount).Error)

	assert.Equal(t, int64(10), userCount)
	assert.Equal(t, int64(25), postCount)
	assert.Greater(t, friendshipCount, int64(0))

	// Seeded users must be able to log in with the shared password.
	var user models.User
	require.NoError(t, db.First(&user).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(DefaultPassword)))

	// No pair should appear twice, in either direction.
	var pairs []struct {
		RequesterID uint
		AddresseeID uint
	}
	require.NoError(t, db.Model(&models.Friendship{}).Select("requester_id, addressee_id").Scan(&pairs).Error)
	seen := make(map[[2]uint]bool, len(pairs))
	for _, p := range pairs {
		key := [2]uint{p.RequesterID, p.AddresseeID}
		if p.AddresseeID < p.RequesterID {
			key = [2]uint{p.AddresseeID, p.RequesterID}
		}
		assert.False(t, seen[key], "duplicate friendship row for %v", key)
		seen[key] = true
	}
}

func TestSeederClearAll(t *testing.T) {
	db, err := database.ConnectSQLite(":memory:")
	require.NoError(t, err)

	s := NewSeeder(db)
	require.NoError(t, s.Run(Options{NumUsers: 5, NumPosts: 5}))
	require.NoError(t, s.ClearAll())

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
