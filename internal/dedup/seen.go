package dedup

import (
	"sync"

	"go-lead-sourcer/internal/models"
)

// Seen is the set of profiles already handled during one run
type Seen struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewSeen() *Seen {
	return &Seen{seen: make(map[string]struct{})}
}

// Add marks url as handled and reports whether it was new
func (s *Seen) Add(url string) bool {
	key := models.NormalizeURL(url)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.seen[key]; exists {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

func (s *Seen) IsSeen(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.seen[models.NormalizeURL(url)]
	return exists
}

func (s *Seen) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
