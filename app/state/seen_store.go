package state

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// SeenStore persists the set of already-drafted item ids across runs.
// Membership is O(1); insertion order is kept so eviction beyond the
// cap drops the oldest entries. The only cross-run state this program
// owns.
type SeenStore struct {
	path  string
	cap   int
	ids   []string
	index map[string]struct{}
}

func NewSeenStore(path string, cap int) *SeenStore {
	return &SeenStore{
		path:  path,
		cap:   cap,
		index: make(map[string]struct{}),
	}
}

// Load reads the persisted state. A missing file means a fresh start; a
// corrupt file is renamed aside and treated as empty — losing dedup
// history is recoverable, refusing to run is not.
func (s *SeenStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read state file: %w", err)
	}

	ids, ok := decodeSeen(data)
	if !ok {
		brokenPath := s.path + ".broken"
		_ = os.WriteFile(brokenPath, data, 0o644)
		slog.Warn("Seen state is corrupt, starting with empty set", "path", s.path, "saved_as", brokenPath)
		return nil
	}

	for _, id := range ids {
		s.add(id)
	}

	return nil
}

// decodeSeen accepts both persisted shapes: a bare JSON string array
// and an object with a "seen" key.
func decodeSeen(data []byte) ([]string, bool) {
	var ids []string
	if err := json.Unmarshal(data, &ids); err == nil {
		return ids, true
	}

	var wrapped struct {
		Seen []string `json:"seen"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Seen != nil {
		return wrapped.Seen, true
	}

	return nil, false
}

func (s *SeenStore) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *SeenStore) Add(id string) {
	s.add(id)
}

func (s *SeenStore) add(id string) {
	if id == "" || s.Contains(id) {
		return
	}

	s.ids = append(s.ids, id)
	s.index[id] = struct{}{}

	if s.cap > 0 && len(s.ids) > s.cap {
		evicted := s.ids[:len(s.ids)-s.cap]
		s.ids = s.ids[len(s.ids)-s.cap:]
		for _, old := range evicted {
			delete(s.index, old)
		}
	}
}

// Snapshot returns the retained ids in insertion order.
func (s *SeenStore) Snapshot() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *SeenStore) Len() int {
	return len(s.ids)
}

// Persist writes the state atomically as a sorted JSON array.
func (s *SeenStore) Persist() error {
	sorted := s.Snapshot()
	sort.Strings(sorted)

	data, err := json.MarshalIndent(sorted, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp state file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp state file: %w", err)
	}

	return nil
}
