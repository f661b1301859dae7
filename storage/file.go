package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alex-pricope/roomvote/logging"
)

// FileIdentityStorage keeps identities in a JSON object keyed by room id,
// the local counterpart of the per-room guest cookie.
type FileIdentityStorage struct {
	Path string
	TTL  time.Duration
	Now  func() time.Time

	mu sync.Mutex
}

func (s *FileIdentityStorage) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *FileIdentityStorage) Get(_ context.Context, roomID string) (*Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return nil, err
	}
	identity, ok := all[roomID]
	if !ok || identity.Expired(s.now()) {
		return nil, ErrIdentityNotFound
	}
	return identity, nil
}

func (s *FileIdentityStorage) Put(_ context.Context, identity *Identity) error {
	if identity == nil || identity.RoomID == "" || identity.GuestUserID == "" {
		return ErrInvalidIdentity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return err
	}

	now := s.now()
	for room, id := range all {
		if id.Expired(now) {
			delete(all, room)
		}
	}

	stamp(identity, now, s.TTL)
	all[identity.RoomID] = identity

	if err := s.save(all); err != nil {
		return err
	}
	logging.Log.Infof("IDENTITY: stored guest %s for room %s in %s", identity.GuestUserID, identity.RoomID, s.Path)
	return nil
}

func (s *FileIdentityStorage) Delete(_ context.Context, roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := all[roomID]; !ok {
		return nil
	}
	delete(all, roomID)
	return s.save(all)
}

func (s *FileIdentityStorage) load() (map[string]*Identity, error) {
	all := make(map[string]*Identity)

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return all, nil
	}
	if err != nil {
		logging.Log.Errorf("IDENTITY: failed to read %s: %v", s.Path, err)
		return nil, err
	}
	if len(data) == 0 {
		return all, nil
	}

	if err := json.Unmarshal(data, &all); err != nil {
		logging.Log.Errorf("IDENTITY: failed to parse %s: %v", s.Path, err)
		return nil, err
	}
	return all, nil
}

// save writes through a temp file so a crash never leaves a truncated store.
func (s *FileIdentityStorage) save(all map[string]*Identity) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		logging.Log.Errorf("IDENTITY: failed to create %s: %v", dir, err)
		return err
	}

	tmp, err := os.CreateTemp(dir, ".identities-*.json")
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
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}
