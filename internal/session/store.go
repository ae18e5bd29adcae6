// Package session holds the ephemeral preview sessions created by image
// uploads: OCR candidates awaiting user selection. Sessions live in process
// memory only and expire after a TTL; there is no restart-survival
// guarantee.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Preview is one pending image import. Candidates maps a normalized lemma
// to its OCR confidence; entries are removed as the user confirms them.
type Preview struct {
	mu sync.Mutex

	UploadID   string
	UserID     uuid.UUID
	ImagePath  string
	Candidates map[string]float64
	CreatedAt  time.Time
}

// Lock serializes confirm batches against this session. The candidate
// removal and possible deletion at the end of a batch is a read-modify-write
// that must not race with a concurrent confirm or cancel.
func (p *Preview) Lock() { p.mu.Lock() }

func (p *Preview) Unlock() { p.mu.Unlock() }

// Store is the preview-session arena keyed by opaque upload id.
type Store interface {
	Put(p *Preview)
	// Get returns the session when it exists, belongs to userID and has not
	// expired at now. An owner mismatch is indistinguishable from absence.
	Get(uploadID string, userID uuid.UUID, now time.Time) (*Preview, bool)
	// Delete removes the session and returns it, when present.
	Delete(uploadID string) (*Preview, bool)
	// Sweep drops every session older than the TTL at now and returns the
	// removed entries so the caller can clean up their stored images.
	Sweep(now time.Time) []*Preview
}

type memoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*Preview
}

func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{
		ttl:     ttl,
		entries: make(map[string]*Preview),
	}
}

func (s *memoryStore) expired(p *Preview, now time.Time) bool {
	return now.Sub(p.CreatedAt) > s.ttl
}

func (s *memoryStore) Put(p *Preview) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[p.UploadID] = p
}

func (s *memoryStore) Get(uploadID string, userID uuid.UUID, now time.Time) (*Preview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.entries[uploadID]
	if !ok || p.UserID != userID || s.expired(p, now) {
		return nil, false
	}
	return p, true
}

func (s *memoryStore) Delete(uploadID string) (*Preview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.entries[uploadID]
	if !ok {
		return nil, false
	}
	delete(s.entries, uploadID)
	return p, true
}

func (s *memoryStore) Sweep(now time.Time) []*Preview {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed []*Preview
	for id, p := range s.entries {
		if s.expired(p, now) {
			delete(s.entries, id)
			removed = append(removed, p)
		}
	}
	return removed
}
