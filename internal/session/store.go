package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"github.com/five82/emphub/internal/model"
)

// ErrUnauthenticated is returned by Load when no usable user is persisted.
var ErrUnauthenticated = errors.New("not logged in")

// userKey is the single key the session lives under.
const userKey = "user"

// Backend is the key/value surface the store needs. *diskv.Diskv satisfies it.
type Backend interface {
	Read(key string) ([]byte, error)
	Write(key string, val []byte) error
	Erase(key string) error
	Has(key string) bool
}

var _ Backend = (*diskv.Diskv)(nil)

// Store persists the authenticated user between runs.
type Store struct {
	backend Backend
}

// Open returns a Store backed by a diskv directory at dir.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("session dir is empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return New(diskv.New(diskv.Options{
		BasePath:     dir,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 64 * 1024,
		PathPerm:     0o700,
		FilePerm:     0o600,
	})), nil
}

// New wraps an existing backend.
func New(b Backend) *Store {
	return &Store{backend: b}
}

// Load returns the persisted user. Presence of a decodable record is the only
// check; an absent or corrupt record yields ErrUnauthenticated.
func (s *Store) Load() (model.User, error) {
	if !s.backend.Has(userKey) {
		return model.User{}, ErrUnauthenticated
	}
	raw, err := s.backend.Read(userKey)
	if err != nil {
		log.Printf("session read failed: %v", err)
		return model.User{}, ErrUnauthenticated
	}
	var user model.User
	if err := json.Unmarshal(raw, &user); err != nil {
		log.Printf("session record unreadable: %v", err)
		return model.User{}, ErrUnauthenticated
	}
	if user.ID == 0 {
		return model.User{}, ErrUnauthenticated
	}
	return user, nil
}

// Save persists user, replacing any previous session.
func (s *Store) Save(user model.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.backend.Write(userKey, raw); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the persisted user. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	if !s.backend.Has(userKey) {
		return nil
	}
	if err := s.backend.Erase(userKey); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("erase session: %w", err)
	}
	return nil
}
