package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Store keeps one JSON file per persona under a single directory. The file
// stem is the profile id.
type Store struct {
	dir string
	mu  sync.RWMutex
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Save writes the profile under its slug and returns the id.
func (s *Store) Save(p Profile) (string, error) {
	if err := p.Validate(); err != nil {
		return "", fmt.Errorf("invalid profile: %w", err)
	}
	id := p.Slug()
	if id == "" {
		return "", fmt.Errorf("cannot derive id from name %q", p.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create profiles dir: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := os.WriteFile(s.Path(id), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write profile: %w", err)
	}
	return id, nil
}

// Load reads one profile by id. A file without a name inherits the id, the
// same convention the store's file stems encode.
func (s *Store) Load(id string) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path(id))
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile %q: %w", id, err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse profile %q: %w", id, err)
	}
	if p.Name == "" {
		p.Name = id
	}
	return p, nil
}

// List returns all readable profiles sorted by id. Corrupt entries are
// skipped.
func (s *Store) List() ([]Profile, error) {
	s.mu.RLock()
	entries, err := os.ReadDir(s.dir)
	s.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read profiles dir: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(ids)

	out := make([]Profile, 0, len(ids))
	for _, id := range ids {
		p, err := s.Load(id)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.Path(id)); err != nil {
		return fmt.Errorf("failed to delete profile %q: %w", id, err)
	}
	return nil
}
