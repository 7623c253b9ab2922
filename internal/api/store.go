package api

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ankit-kv/gridmaker/pkg/errors"
	"github.com/ankit-kv/gridmaker/pkg/grid/sink"
)

// DefaultTTL is how long composed artifacts stay downloadable.
const DefaultTTL = 15 * time.Minute

// Job holds the artifacts of one compose request while they are
// downloadable. Jobs live in memory only and expire after their TTL.
type Job struct {
	ID        string
	Base      string
	Artifacts map[sink.Format][]byte
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired returns true if the job has passed its TTL.
func (j *Job) IsExpired() bool {
	return time.Now().After(j.ExpiresAt)
}

// Artifact returns the encoded bytes for the given download filename.
func (j *Job) Artifact(filename string) ([]byte, sink.Format, error) {
	if err := errors.ValidateArtifactName(filename); err != nil {
		return nil, "", err
	}
	for format, data := range j.Artifacts {
		if format.Filename(j.Base) == filename {
			return data, format, nil
		}
	}
	return nil, "", errors.New(errors.ErrCodeArtifactNotFound, "artifact %q not found", filename)
}

// Store keeps compose jobs in memory. It is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*Job
	ttl  time.Duration
}

// NewStore creates an in-memory job store with the given TTL.
// A zero TTL uses DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

// Put stores the artifacts of a compose run under a fresh job ID.
func (s *Store) Put(base string, artifacts map[sink.Format][]byte) *Job {
	now := time.Now()
	job := &Job{
		ID:        uuid.NewString(),
		Base:      base,
		Artifacts: artifacts,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()
	return job
}

// Get retrieves a job by ID. Expired jobs are treated as absent.
func (s *Store) Get(id string) (*Job, error) {
	s.mu.RLock()
	job, ok := s.jobs[id]
	s.mu.RUnlock()
	if !ok || job.IsExpired() {
		return nil, errors.New(errors.ErrCodeNotFound, "job %q not found", id)
	}
	return job, nil
}

// Cleanup removes expired jobs and returns how many were dropped.
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	dropped := 0
	for id, job := range s.jobs {
		if job.IsExpired() {
			delete(s.jobs, id)
			dropped++
		}
	}
	return dropped
}
