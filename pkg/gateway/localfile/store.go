package localfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/milstat-dev/milstat/pkg/domain/interfaces"
)

// Store is the locally persisted mirror used when no remote endpoint is
// configured. Each collection lives in its own JSON file and every write is
// a whole-collection read-modify-write; there is no partial update
// primitive and no network failure mode.
type Store struct {
	mu      sync.Mutex
	dir     string
	roster  *rosterStore
	reports *reportStore
	tasks   *taskStore
	profile *profileStore
}

var _ interfaces.Gateway = &Store{}

const (
	rosterFile  = "roster.json"
	reportsFile = "reports.json"
	tasksFile   = "tasks.json"
	profileFile = "profile.json"
)

func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, goerr.New("local state directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, goerr.Wrap(err, "failed to create state directory", goerr.V("dir", dir))
	}

	s := &Store{dir: dir}
	s.roster = &rosterStore{s: s}
	s.reports = &reportStore{s: s}
	s.tasks = &taskStore{s: s}
	s.profile = &profileStore{s: s}

	return s, nil
}

func (s *Store) Roster() interfaces.RosterStore {
	return s.roster
}

func (s *Store) Reports() interfaces.ReportStore {
	return s.reports
}

func (s *Store) Tasks() interfaces.TaskStore {
	return s.tasks
}

// Profile returns the session profile store. The profile lives here even
// when record collections are served remotely.
func (s *Store) Profile() interfaces.ProfileStore {
	return s.profile
}

func (s *Store) Close() error {
	return nil
}

// readCollection loads a whole collection file into out. A missing file is
// an empty collection. Callers must hold s.mu.
func (s *Store) readCollection(name string, out any) error {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return goerr.Wrap(err, "failed to read collection", goerr.V("path", path))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return goerr.Wrap(err, "collection file is corrupt", goerr.V("path", path))
	}
	return nil
}

// writeCollection replaces a whole collection file atomically. Callers must
// hold s.mu.
func (s *Store) writeCollection(name string, in any) error {
	path := filepath.Join(s.dir, name)
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to encode collection", goerr.V("path", path))
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return goerr.Wrap(err, "failed to write collection", goerr.V("path", path))
	}
	if err := os.Rename(tmp, path); err != nil {
		return goerr.Wrap(err, "failed to replace collection", goerr.V("path", path))
	}
	return nil
}

func (s *Store) removeFile(name string) error {
	path := filepath.Join(s.dir, name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return goerr.Wrap(err, "failed to remove file", goerr.V("path", path))
	}
	return nil
}
