// Package state persists forge's per-project bookkeeping in
// .forge/state.json. The file is advisory: losing it never loses user
// content, it only resets "when did forge last touch this project".
package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SchemaVersion identifies the state file layout.
const SchemaVersion = 1

// State records the outcome of the most recent init/merge run.
type State struct {
	SchemaVersion    int    `json:"schemaVersion"`
	TargetFile       string `json:"targetFile"`
	TemplateChecksum string `json:"templateChecksum,omitempty"`
	LastMergeAt      string `json:"lastMergeAt,omitempty"`
}

// Store reads and writes the state file for one project root. Safe for
// concurrent use.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a Store rooted at projectRoot. Nothing is touched
// on disk until Save is called.
func NewStore(projectRoot string) *Store {
	return &Store{path: filepath.Join(projectRoot, ".forge", "state.json")}
}

// Path returns the state file location.
func (s *Store) Path() string { return s.path }

// Load reads the state file. A missing file returns a zero State with
// the current schema version and no error.
func (s *Store) Load() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return State{SchemaVersion: SchemaVersion}, nil
	}
	if err != nil {
		return State{}, err
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return st, nil
}

// Save writes the state file atomically (temp file + rename), creating
// the .forge directory on first use.
func (s *Store) Save(st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st.SchemaVersion = SchemaVersion
	out, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}
	out = append(out, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "state-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// RecordMerge updates the store after a successful init/merge run.
func (s *Store) RecordMerge(targetFile, templateContent string) error {
	return s.Save(State{
		TargetFile:       targetFile,
		TemplateChecksum: Checksum(templateContent),
		LastMergeAt:      time.Now().UTC().Format(time.RFC3339),
	})
}

// Checksum returns the hex sha256 of content, used to detect whether
// the canonical template changed since the last run.
func Checksum(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
