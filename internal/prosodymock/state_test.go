package prosodymock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stateYAML = `rooms:
  lobby@groups.chat.protype.tw:
    alice@chat.protype.tw: owner
  ops@groups.chat.protype.tw: {}
  other@conference.example.org: {}
`

func writeState(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(path, []byte(stateYAML), 0o600))
	return path
}

func TestLoadStateMissingFile(t *testing.T) {
	s, err := LoadState(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, s.Rooms)
}

func TestLoadStateInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rooms: [unclosed"), 0o600))

	_, err := LoadState(path)
	assert.Error(t, err)
}

func TestListRooms(t *testing.T) {
	s, err := LoadState(writeState(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"lobby@groups.chat.protype.tw", "ops@groups.chat.protype.tw"}, s.ListRooms("groups.chat.protype.tw"))
	assert.Empty(t, s.ListRooms("chat.protype.tw"))
}

func TestAffiliation(t *testing.T) {
	s, err := LoadState(writeState(t))
	require.NoError(t, err)

	a, err := s.Affiliation("lobby@groups.chat.protype.tw", "alice@chat.protype.tw")
	require.NoError(t, err)
	assert.Equal(t, "owner", a)

	a, err = s.Affiliation("lobby@groups.chat.protype.tw", "bob@chat.protype.tw")
	require.NoError(t, err)
	assert.Equal(t, "none", a)

	_, err = s.Affiliation("missing@groups.chat.protype.tw", "bob@chat.protype.tw")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestSetAffiliationAndSave(t *testing.T) {
	path := writeState(t)
	s, err := LoadState(path)
	require.NoError(t, err)

	require.NoError(t, s.SetAffiliation("ops@groups.chat.protype.tw", "bob@chat.protype.tw", "admin"))
	require.NoError(t, s.SetAffiliation("lobby@groups.chat.protype.tw", "alice@chat.protype.tw", "none"))
	assert.ErrorIs(t, s.SetAffiliation("ops@groups.chat.protype.tw", "bob@chat.protype.tw", "king"), ErrBadAffiliation)
	assert.ErrorIs(t, s.SetAffiliation("gone@groups.chat.protype.tw", "bob@chat.protype.tw", "member"), ErrRoomNotFound)
	require.NoError(t, s.Save(path))

	reloaded, err := LoadState(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"bob@chat.protype.tw": "admin"}, reloaded.Rooms["ops@groups.chat.protype.tw"])
	assert.Empty(t, reloaded.Rooms["lobby@groups.chat.protype.tw"])
}

func TestAddRoom(t *testing.T) {
	s, err := LoadState(filepath.Join(t.TempDir(), "new.yaml"))
	require.NoError(t, err)

	s.AddRoom("new@groups.chat.protype.tw")
	s.AddRoom("new@groups.chat.protype.tw")
	assert.Equal(t, []string{"new@groups.chat.protype.tw"}, s.ListRooms("groups.chat.protype.tw"))
}
