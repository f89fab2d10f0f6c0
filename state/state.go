// state/state.go
package state

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
	"time"

	"probinary_go/profit"
	"probinary_go/session"
)

// StateManagerInterface is what the orchestrator needs from snapshot storage.
// The session core never touches it.
type StateManagerInterface interface {
	// GetFullState returns a copy of the last saved state.
	GetFullState() AppState
	// SaveSession replaces the stored snapshot and outcome history.
	SaveSession(snap session.Snapshot, outcomes []profit.Outcome) error
	// Reset removes any saved state and starts empty.
	Reset() error
}

// AppState is the top-level structure persisted to the state file.
type AppState struct {
	Session   *session.Snapshot `json:"session"`
	Outcomes  []profit.Outcome  `json:"outcomes"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// StateManager is the JSON file implementation of StateManagerInterface.
type StateManager struct {
	mu       sync.RWMutex
	filePath string
	state    *AppState
	now      func() time.Time
}

// NewStateManager loads the state file, creating an empty one if it does not exist yet.
func NewStateManager(filePath string) (*StateManager, error) {
	sm := &StateManager{
		filePath: filePath,
		state:    emptyState(),
		now:      time.Now,
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	if err := sm.load(); err != nil {
		if os.IsNotExist(err) {
			if err := sm.save(); err != nil {
				return nil, fmt.Errorf("failed to create initial empty state file: %w", err)
			}
			return sm, nil
		}
		return nil, fmt.Errorf("failed to load initial state: %w", err)
	}

	return sm, nil
}

func emptyState() *AppState {
	return &AppState{Outcomes: make([]profit.Outcome, 0)}
}

// save writes through a temporary file and renames it, so readers never see a partial file.
func (sm *StateManager) save() error {
	data, err := json.MarshalIndent(sm.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state for saving: %w", err)
	}

	tmpFilePath := sm.filePath + ".tmp"
	if err := ioutil.WriteFile(tmpFilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write to temporary state file: %w", err)
	}

	return os.Rename(tmpFilePath, sm.filePath)
}

func (sm *StateManager) load() error {
	data, err := ioutil.ReadFile(sm.filePath)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil // empty file means empty state
	}
	return json.Unmarshal(data, sm.state)
}

func (sm *StateManager) GetFullState() AppState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	copied := AppState{UpdatedAt: sm.state.UpdatedAt}
	if sm.state.Session != nil {
		snap := *sm.state.Session
		copied.Session = &snap
	}
	copied.Outcomes = make([]profit.Outcome, len(sm.state.Outcomes))
	copy(copied.Outcomes, sm.state.Outcomes)
	return copied
}

func (sm *StateManager) SaveSession(snap session.Snapshot, outcomes []profit.Outcome) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.state.Session = &snap
	sm.state.Outcomes = append(make([]profit.Outcome, 0, len(outcomes)), outcomes...)
	sm.state.UpdatedAt = sm.now().UTC()
	return sm.save()
}

func (sm *StateManager) Reset() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.state = emptyState()
	return sm.save()
}
