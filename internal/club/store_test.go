package club_test

import (
	"database/sql"
	"testing"

	"github.com/courtside/matchpoint/internal/club"
	"github.com/courtside/matchpoint/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (club.ClubStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := club.New(db)
	return store, db, dbTeardown
}

func TestClubAndCategoryLookup(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertClub(club.Club{ID: "club-1", Name: "Riverside Padel"}))
	require.NoError(t, store.UpsertCategory(club.Category{ID: "cat-1", ClubID: "club-1", Name: "Open"}))

	c, err := store.GetClub("club-1")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Riverside Padel", c.Name)

	missing, err := store.GetClub("club-2")
	require.NoError(t, err)
	assert.Nil(t, missing)

	cat, err := store.GetCategory("cat-1")
	require.NoError(t, err)
	require.NotNil(t, cat)
	assert.Equal(t, "club-1", cat.ClubID)

	missingCat, err := store.GetCategory("cat-2")
	require.NoError(t, err)
	assert.Nil(t, missingCat)
}

func TestUpsertAndGetPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertClub(club.Club{ID: "club-1", Name: "Riverside Padel"}))
	require.NoError(t, store.UpsertPlayers([]club.PlayerInfo{
		{ID: "p1", ClubID: "club-1", Name: "Player One", Email: "one@club.test", Level: 1.5},
		{ID: "p2", ClubID: "club-1", Name: "Player Two", Level: 2.0},
	}))

	p, err := store.GetPlayer("p1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Player One", p.Name)
	assert.Equal(t, "one@club.test", p.Email)

	missing, err := store.GetPlayer("p9")
	require.NoError(t, err)
	assert.Nil(t, missing)

	t.Run("gets multiple players", func(t *testing.T) {
		players, err := store.GetPlayers([]string{"p1", "p2"})
		require.NoError(t, err)
		require.Len(t, players, 2)
	})

	t.Run("returns empty slice for empty id slice", func(t *testing.T) {
		players, err := store.GetPlayers([]string{})
		require.NoError(t, err)
		assert.Len(t, players, 0)
	})

	t.Run("upsert updates an existing player", func(t *testing.T) {
		require.NoError(t, store.UpsertPlayers([]club.PlayerInfo{
			{ID: "p1", ClubID: "club-1", Name: "Player Uno", Level: 1.8},
		}))
		p, err := store.GetPlayer("p1")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "Player Uno", p.Name)
	})

	t.Run("lists players scoped to a club", func(t *testing.T) {
		require.NoError(t, store.UpsertClub(club.Club{ID: "club-2", Name: "Other Club"}))
		require.NoError(t, store.UpsertPlayers([]club.PlayerInfo{
			{ID: "p3", ClubID: "club-2", Name: "Outsider"},
		}))

		players, err := store.GetAllPlayers("club-1")
		require.NoError(t, err)
		assert.Len(t, players, 2)
	})
}

func TestCategoryMembership(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertClub(club.Club{ID: "club-1", Name: "Riverside Padel"}))
	require.NoError(t, store.UpsertCategory(club.Category{ID: "cat-1", ClubID: "club-1", Name: "Open"}))
	require.NoError(t, store.UpsertPlayers([]club.PlayerInfo{
		{ID: "p1", ClubID: "club-1", Name: "Player One"},
	}))

	member, err := store.IsCategoryMember("cat-1", "p1")
	require.NoError(t, err)
	assert.False(t, member)

	require.NoError(t, store.AddPlayerToCategory("cat-1", "p1"))

	member, err = store.IsCategoryMember("cat-1", "p1")
	require.NoError(t, err)
	assert.True(t, member)

	// Adding twice must not fail.
	require.NoError(t, store.AddPlayerToCategory("cat-1", "p1"))
}
