package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/eshaffer321/monarch-mcp/pkg/monarch"
)

func TestStore_SaveAndLoad(t *testing.T) {
	keyring.MockInit()
	store := NewStore()

	err := store.Save(&monarch.Session{
		Token: "tok-abc",
		Email: "user@example.com",
	})
	require.NoError(t, err)

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "tok-abc", loaded.Token)
	assert.Equal(t, "user@example.com", loaded.Email)
	assert.False(t, loaded.SavedAt.IsZero())
}

func TestStore_SaveOverwrites(t *testing.T) {
	keyring.MockInit()
	store := NewStore()

	require.NoError(t, store.Save(&monarch.Session{Token: "tok-old"}))
	require.NoError(t, store.Save(&monarch.Session{Token: "tok-new"}))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "tok-new", loaded.Token)
}

func TestStore_SaveRejectsEmpty(t *testing.T) {
	keyring.MockInit()
	store := NewStore()

	assert.Error(t, store.Save(nil))
	assert.Error(t, store.Save(&monarch.Session{}))
}

func TestStore_LoadAbsent(t *testing.T) {
	keyring.MockInit()
	store := NewStore()

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_LoadCorrupt(t *testing.T) {
	keyring.MockInit()
	store := NewStore()

	// A corrupt entry reads as absent, not as an error.
	require.NoError(t, keyring.Set(Service, User, "not json"))
	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Decodable but tokenless is also treated as absent.
	require.NoError(t, keyring.Set(Service, User, `{"email": "user@example.com"}`))
	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_Delete(t *testing.T) {
	keyring.MockInit()
	store := NewStore()

	require.NoError(t, store.Save(&monarch.Session{Token: "tok-abc"}))
	require.NoError(t, store.Delete())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Deleting again is fine.
	assert.NoError(t, store.Delete())
}
