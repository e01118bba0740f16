package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mzigoego/mzigo/db"
)

// setupTestDBForTokens sets up an in-memory SQLite database for testing purposes.
// It returns a pointer to the gorm.DB instance.
func setupTestDBForTokens(t *testing.T) *gorm.DB {
	dbObject, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbObject.AutoMigrate(&db.KVItem{}))
	return dbObject
}

func TestTokenStore_SaveThenLoad(t *testing.T) {
	store := db.NewTokenStore(setupTestDBForTokens(t), "mzigoego_", "access_token", "refresh_token")

	err := store.Save(context.Background(), db.TokenPair{Access: "T1", Refresh: "R1"})
	require.NoError(t, err)

	pair, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.Equal(t, "T1", pair.Access)
	assert.Equal(t, "R1", pair.Refresh)
}

func TestTokenStore_LoadReturnsNilWhenEmpty(t *testing.T) {
	store := db.NewTokenStore(setupTestDBForTokens(t), "mzigoego_", "access_token", "refresh_token")

	pair, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, pair)
}

func TestTokenStore_SaveOverwritesExistingPair(t *testing.T) {
	store := db.NewTokenStore(setupTestDBForTokens(t), "mzigoego_", "access_token", "refresh_token")

	require.NoError(t, store.Save(context.Background(), db.TokenPair{Access: "T1", Refresh: "R1"}))
	require.NoError(t, store.Save(context.Background(), db.TokenPair{Access: "T2", Refresh: "R2"}))

	pair, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.Equal(t, db.TokenPair{Access: "T2", Refresh: "R2"}, *pair)
}

func TestTokenStore_ClearRemovesPair(t *testing.T) {
	store := db.NewTokenStore(setupTestDBForTokens(t), "mzigoego_", "access_token", "refresh_token")
	require.NoError(t, store.Save(context.Background(), db.TokenPair{Access: "T1", Refresh: "R1"}))

	require.NoError(t, store.Clear(context.Background()))

	pair, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, pair)
}

func TestTokenStore_ClearOnEmptyStoreSucceeds(t *testing.T) {
	store := db.NewTokenStore(setupTestDBForTokens(t), "mzigoego_", "access_token", "refresh_token")

	require.NoError(t, store.Clear(context.Background()))
	require.NoError(t, store.Clear(context.Background()))
}

func TestTokenStore_KeysAreNamespacedByPrefix(t *testing.T) {
	testDB := setupTestDBForTokens(t)
	store := db.NewTokenStore(testDB, "mzigoego_", "access_token", "refresh_token")
	require.NoError(t, store.Save(context.Background(), db.TokenPair{Access: "T1", Refresh: "R1"}))

	var item db.KVItem
	require.NoError(t, testDB.First(&item, "key = ?", "mzigoego_access_token").Error)
	assert.Equal(t, "T1", item.Value)

	other := db.NewTokenStore(testDB, "other_", "access_token", "refresh_token")
	pair, err := other.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, pair, "stores with different prefixes must not see each other's tokens")
}

func TestTokenStore_ErrorsForUninitializedDB(t *testing.T) {
	store := db.NewTokenStore(nil, "mzigoego_", "access_token", "refresh_token")

	assert.Error(t, store.Save(context.Background(), db.TokenPair{Access: "T1"}))
	_, err := store.Load(context.Background())
	assert.Error(t, err)
	assert.Error(t, store.Clear(context.Background()))
}

func TestInitDB_CreatesDatabaseFile(t *testing.T) {
	path := t.TempDir() + "/storage/test.db"
	require.NoError(t, db.InitDB(path))
	defer func() { require.NoError(t, db.CloseDB()) }()

	store := db.NewTokenStore(db.Db, "mzigoego_", "access_token", "refresh_token")
	require.NoError(t, store.Save(context.Background(), db.TokenPair{Access: "T1", Refresh: "R1"}))
	pair, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.Equal(t, "T1", pair.Access)
}
