package prosodymock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
	"gopkg.in/yaml.v2"

	"github.com/wake/snikket-web-portal/internal/muc"
)

// ErrRoomNotFound is returned for operations on a room that does not exist.
var ErrRoomNotFound = errors.New("room not found")

// ErrBadAffiliation is returned when set_affiliation names an unknown role.
var ErrBadAffiliation = errors.New("invalid affiliation")

// State is the persisted room table: room JID to user JID to affiliation.
type State struct {
	mu    sync.Mutex
	Rooms map[string]map[string]string `yaml:"rooms"`
}

// LoadState reads the state file. A missing file is an empty state.
func LoadState(path string) (*State, error) {
	s := &State{Rooms: map[string]map[string]string{}}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse state %s: %w", path, err)
	}
	if s.Rooms == nil {
		s.Rooms = map[string]map[string]string{}
	}
	return s, nil
}

// Save writes the state atomically.
func (s *State) Save(path string) error {
	s.mu.Lock()
	data, err := yaml.Marshal(s)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".prosodymock-*.yaml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// AddRoom creates an empty room if it does not exist.
func (s *State) AddRoom(room string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Rooms[room]; !ok {
		s.Rooms[room] = map[string]string{}
	}
}

// ListRooms returns the rooms hosted on domain, sorted.
func (s *State) ListRooms(domain string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms := lo.Filter(lo.Keys(s.Rooms), func(room string, _ int) bool {
		return strings.HasSuffix(room, "@"+domain)
	})
	sort.Strings(rooms)
	return rooms
}

// Affiliation returns the affiliation of user in room; users without an
// entry are "none".
func (s *State) Affiliation(room, user string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members, ok := s.Rooms[room]
	if !ok {
		return "", ErrRoomNotFound
	}
	if a, ok := members[user]; ok {
		return a, nil
	}
	return string(muc.AffiliationNone), nil
}

// SetAffiliation records affiliation for user in room. Setting "none"
// removes the entry.
func (s *State) SetAffiliation(room, user, affiliation string) error {
	if !muc.ValidAffiliation(affiliation) {
		return fmt.Errorf("%w: %q", ErrBadAffiliation, affiliation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	members, ok := s.Rooms[room]
	if !ok {
		return ErrRoomNotFound
	}
	if affiliation == string(muc.AffiliationNone) {
		delete(members, user)
		return nil
	}
	members[user] = affiliation
	return nil
}
