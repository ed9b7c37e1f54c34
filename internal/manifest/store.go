package manifest

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var runsBucket = []byte("runs")

// Artifact records one written map variant.
type Artifact struct {
	Scale int    `json:"scale"`
	Path  string `json:"path"`
	Mobs  int    `json:"mobs"`
	Bytes int64  `json:"bytes"`
}

// Run records one invocation of the generator, successful or not.
type Run struct {
	ID         string     `json:"id"`
	Seed       uint64     `json:"seed"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
	Artifacts  []Artifact `json:"artifacts"`
	Failures   []string   `json:"failures,omitempty"`
}

// Store persists run records in a bbolt database.
type Store struct {
	db *bbolt.DB
}

// Open creates or opens the manifest database at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open manifest db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(runsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create runs bucket: %w", err)
	}

	log.Printf("[MANIFEST] run manifest open at %s", dbPath)

	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// sortableStamp is fixed width; RFC3339Nano trims fractional zeros, which
// breaks bbolt's byte order within a second.
const sortableStamp = "2006-01-02T15:04:05.000000000"

// Record appends a run. Keys are ordered by start time so a cursor walk
// lists runs chronologically.
func (s *Store) Record(run Run) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run %s: %w", run.ID, err)
	}

	key := []byte(run.StartedAt.UTC().Format(sortableStamp) + "|" + run.ID)

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(runsBucket).Put(key, data)
	})
}

// List returns all recorded runs, oldest first.
func (s *Store) List() ([]Run, error) {
	var runs []Run

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(runsBucket).ForEach(func(_, v []byte) error {
			var run Run
			if err := json.Unmarshal(v, &run); err != nil {
				return fmt.Errorf("corrupt run record: %w", err)
			}
			runs = append(runs, run)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return runs, nil
}
