package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"keyclaim/log"

	"github.com/gofrs/flock"
)

const (
	StateFileName = "state.json"
	// LockFileName is the name of the lock file
	LockFileName = "state.lock"
	// DefaultLockTimeout is the default timeout for acquiring locks
	DefaultLockTimeout = 5 * time.Second
)

// LayoutState is the sidebar preference that survives restarts.
type LayoutState struct {
	// Compact is the desktop state to return to (or stay in) when not locked.
	Compact bool `json:"compact"`
	// Locked pins the sidebar expanded.
	Locked bool `json:"locked"`
}

// State represents the application state that persists between sessions
type State struct {
	Layout LayoutState `json:"layout"`
	// Saved is false until a state file has been read or written.
	Saved bool `json:"saved"`

	dir         string
	lockFile    *flock.Flock
	lockTimeout time.Duration
}

// NewState returns an empty state backed by dir. An empty dir uses GetConfigDir.
func NewState(dir string) *State {
	s := &State{dir: dir, lockTimeout: DefaultLockTimeout}
	if s.dir == "" {
		configDir, err := GetConfigDir()
		if err != nil {
			log.ErrorLog.Printf("failed to get config directory: %v", err)
			return s
		}
		s.dir = configDir
	}
	s.lockFile = flock.New(filepath.Join(s.dir, LockFileName))
	return s
}

// LoadState loads the state from disk with locking. If it cannot be done, we
// return the empty state.
func LoadState(dir string) *State {
	state := NewState(dir)
	if err := state.Refresh(); err != nil {
		log.WarningLog.Printf("failed to load state from disk: %v", err)
	}
	return state
}

// Path returns the location of the state file.
func (s *State) Path() string {
	return filepath.Join(s.dir, StateFileName)
}

// Refresh reloads state from disk under a shared lock.
func (s *State) Refresh() error {
	if s.dir == "" {
		return fmt.Errorf("state directory unknown")
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.lockTimeout)
	defer cancel()

	locked, err := s.lockFile.TryRLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire read lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire read lock within timeout")
	}
	defer s.lockFile.Unlock()

	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read state file: %w", err)
	}

	var onDisk State
	if err := json.Unmarshal(data, &onDisk); err != nil {
		return fmt.Errorf("failed to parse state file: %w", err)
	}
	s.Layout = onDisk.Layout
	s.Saved = true
	return nil
}

// SaveLayout stores the layout preference with an exclusive lock.
func (s *State) SaveLayout(layout LayoutState) error {
	s.Layout = layout
	s.Saved = true
	return s.save()
}

func (s *State) save() error {
	if s.dir == "" {
		return fmt.Errorf("state directory unknown")
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.lockTimeout)
	defer cancel()

	locked, err := s.lockFile.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire write lock within timeout")
	}
	defer s.lockFile.Unlock()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	// Write to a temporary file first to ensure atomicity
	tmpPath := s.Path() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary state file: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to atomically update state file: %w", err)
	}
	return nil
}

// Close releases any locks held by this state
func (s *State) Close() error {
	if s.lockFile != nil {
		return s.lockFile.Close()
	}
	return nil
}
