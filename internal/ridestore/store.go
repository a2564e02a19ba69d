// Package ridestore persists the ride list between sessions. The ride
// list is the only durable input; everything else the dashboard shows is
// recomputed from it on demand.
package ridestore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"cycleledger.app/internal/models"
)

const ridesFile = "rides.json"

// Store reads and writes the ride list under a data directory.
type Store struct {
	dataDir string
	logger  *slog.Logger
}

// New creates a Store, creating the data directory if necessary.
func New(dataDir string, logger *slog.Logger) (*Store, error) {
	stat, err := os.Stat(dataDir)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := os.MkdirAll(dataDir, os.ModePerm); err != nil {
			return nil, err
		}
	} else if !stat.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dataDir)
	}

	return &Store{dataDir: dataDir, logger: logger}, nil
}

func (s *Store) path() string {
	return filepath.Join(s.dataDir, ridesFile)
}

// Load reads the persisted ride list. A missing file is a fresh install,
// not an error.
func (s *Store) Load() ([]models.Ride, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read ride store: %v", err)
	}

	var rides []models.Ride
	if err := json.Unmarshal(data, &rides); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ride store: %v", err)
	}
	return rides, nil
}

// Save writes the ride list atomically: the new content lands in a
// temporary file first so a crash mid-write cannot corrupt the store.
func (s *Store) Save(rides []models.Ride) error {
	data, err := json.MarshalIndent(rides, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rides: %v", err)
	}

	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write ride store: %v", err)
	}
	if err := os.Rename(tmp, s.path()); err != nil {
		return fmt.Errorf("failed to replace ride store: %v", err)
	}

	s.logger.Info("saved ride store", "rides", len(rides), "path", s.path())
	return nil
}

// Merge combines an imported batch into the existing ride list. Rides
// sharing a rideId are deduplicated, with the imported record replacing
// the stored one (re-harvesting a page yields fresher data). Rides
// without an id are kept as-is; the source system omits ids on some
// legacy records and they cannot be told apart reliably. The result is
// ordered by start time, unknown times last.
func Merge(existing, imported []models.Ride) []models.Ride {
	byID := make(map[string]int)
	var out []models.Ride

	add := func(r models.Ride) {
		if r.RideID == nil {
			out = append(out, r)
			return
		}
		if i, seen := byID[*r.RideID]; seen {
			out[i] = r
			return
		}
		byID[*r.RideID] = len(out)
		out = append(out, r)
	}

	for _, r := range existing {
		add(r)
	}
	for _, r := range imported {
		add(r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].StartTimeMs, out[j].StartTimeMs
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
	return out
}
