// Package store persists the small shared state that survives daemon
// restarts, most importantly the anchor selection.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// CurrentSchemaVersion is the current version of the state schema.
const CurrentSchemaVersion = 1

// State is persisted to ~/.local/share/notishift/state.json and shared
// between notishiftd and the notishift CLI.
type State struct {
	// Anchor is the selected anchor, one of the nine grid values.
	Anchor string `json:"anchor"`

	// UpdatedAt is the Unix timestamp of the last change.
	UpdatedAt int64 `json:"updated_at,omitempty"`

	// SchemaVersion for compatibility.
	SchemaVersion int `json:"schema_version"`
}

// stateFileMutex protects concurrent access to the state file.
var stateFileMutex sync.RWMutex

// DefaultState returns a State with default values.
func DefaultState() *State {
	return &State{
		Anchor:        "top-right",
		SchemaVersion: CurrentSchemaVersion,
	}
}

// DataDir returns the path to the notishift data directory.
// Uses XDG_DATA_HOME or defaults to ~/.local/share.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "notishift"), nil
}

// StatePath returns the path to the state file.
func StatePath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "state.json"), nil
}

// LoadState loads the persisted state from path.
// A missing or corrupted file yields the default state.
func LoadState(path string) (*State, error) {
	stateFileMutex.RLock()
	defer stateFileMutex.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultState(), nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return DefaultState(), nil
	}

	if state.SchemaVersion == 0 {
		state.SchemaVersion = CurrentSchemaVersion
	}
	if state.Anchor == "" {
		state.Anchor = DefaultState().Anchor
	}

	return &state, nil
}

// SaveState writes the state to path atomically via a temp file.
func SaveState(path string, state *State) error {
	stateFileMutex.Lock()
	defer stateFileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	if state.SchemaVersion == 0 {
		state.SchemaVersion = CurrentSchemaVersion
	}
	state.UpdatedAt = time.Now().Unix()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
