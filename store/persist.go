// ABOUTME: Snapshot envelope encoding and the load fallback policy
// ABOUTME: Stored snapshots are a best-effort cache; anything unreadable falls back to the seed
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/revenueos/models"
)

// SchemaVersion is the envelope version written by this build.
const SchemaVersion = 1

const (
	SourceStored = "stored"
	SourceSeed   = "seed"
)

// Load fallback reasons.
const (
	ReasonNotLoaded       = "not_loaded"
	ReasonMissing         = "missing"
	ReasonCorrupt         = "corrupt"
	ReasonVersionMismatch = "version_mismatch"
	ReasonBackendError    = "backend_error"
	ReasonLegacy          = "legacy"
)

// LoadReport says where the current snapshot came from.
type LoadReport struct {
	Source  string     `json:"source"`
	Reason  string     `json:"reason,omitempty"`
	SavedAt *time.Time `json:"savedAt,omitempty"`
}

type envelope struct {
	SchemaVersion int             `json:"schema_version"`
	SavedAt       time.Time       `json:"saved_at"`
	State         json.RawMessage `json:"state"`
}

// Load reads the stored snapshot. Absence, corruption or a version mismatch
// installs the default seed instead; the reason is logged and kept in the
// LoadReport. Only a backend failure other than a miss is returned as an error.
func (s *Store) Load() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	data, err := s.backend.Get([]byte(KeyState))
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			s.fallback(ReasonMissing, nil)
			return nil
		}
		s.fallback(ReasonBackendError, err)
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	state, report, err := decodeSnapshot(data)
	if err != nil {
		s.fallback(report.Reason, err)
		return nil
	}

	s.mu.Lock()
	s.state = state
	s.report = report
	s.mu.Unlock()
	s.bumpIDs(state)
	s.logger.Debug("snapshot loaded", "reason", report.Reason, "leads", len(state.Leads))
	return nil
}

// LoadReport returns the outcome of the last Load.
func (s *Store) LoadReport() LoadReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

func (s *Store) fallback(reason string, cause error) {
	seed := models.Seed(s.now())
	s.mu.Lock()
	s.state = seed
	s.report = LoadReport{Source: SourceSeed, Reason: reason}
	s.mu.Unlock()

	s.recorder.LoadFallback(reason)
	if reason == ReasonMissing {
		s.logger.Info("no stored snapshot, using default dataset")
		return
	}
	s.logger.Warn("stored snapshot discarded, using default dataset", "reason", reason, "err", cause)
}

// bumpIDs keeps new ids above every id already in the snapshot.
func (s *Store) bumpIDs(state models.AppState) {
	for _, l := range state.Leads {
		s.lastID = max(s.lastID, l.ID)
	}
	for _, p := range state.Proposals {
		s.lastID = max(s.lastID, p.ID)
	}
	for _, c := range state.Contracts {
		s.lastID = max(s.lastID, c.ID)
	}
}

// persist is the first subscriber: it writes every installed snapshot.
func (s *Store) persist(state models.AppState) error {
	data, err := encodeSnapshot(state, s.now())
	if err == nil {
		err = s.backend.Set([]byte(KeyState), data)
	}
	if err != nil {
		s.recorder.PersistFailure()
		s.logger.Error("failed to persist snapshot", "err", err)
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	return nil
}

func encodeSnapshot(state models.AppState, savedAt time.Time) ([]byte, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{SchemaVersion: SchemaVersion, SavedAt: savedAt.UTC(), State: raw})
}

// decodeSnapshot accepts the versioned envelope or a bare legacy snapshot,
// which is read as version 1.
func decodeSnapshot(data []byte) (models.AppState, LoadReport, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return models.AppState{}, LoadReport{Source: SourceSeed, Reason: ReasonCorrupt}, err
	}

	if _, ok := probe["schema_version"]; !ok {
		if _, ok := probe["leads"]; !ok {
			return models.AppState{}, LoadReport{Source: SourceSeed, Reason: ReasonCorrupt}, errors.New("snapshot has neither envelope nor leads")
		}
		var state models.AppState
		if err := json.Unmarshal(data, &state); err != nil {
			return models.AppState{}, LoadReport{Source: SourceSeed, Reason: ReasonCorrupt}, err
		}
		return state, LoadReport{Source: SourceStored, Reason: ReasonLegacy}, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return models.AppState{}, LoadReport{Source: SourceSeed, Reason: ReasonCorrupt}, err
	}
	if env.SchemaVersion != SchemaVersion {
		return models.AppState{}, LoadReport{Source: SourceSeed, Reason: ReasonVersionMismatch},
			fmt.Errorf("snapshot schema version %d, want %d", env.SchemaVersion, SchemaVersion)
	}
	var state models.AppState
	if err := json.Unmarshal(env.State, &state); err != nil {
		return models.AppState{}, LoadReport{Source: SourceSeed, Reason: ReasonCorrupt}, err
	}
	savedAt := env.SavedAt
	return state, LoadReport{Source: SourceStored, SavedAt: &savedAt}, nil
}
