package activity

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemActivityStore struct {
	mu sync.Mutex
	// identities in first-appearance order, for stable tie-breaking
	order []string
	times map[string][]time.Time

	// overridable for tests
	now func() time.Time
}

func NewMemActivityStore() *MemActivityStore {
	return &MemActivityStore{
		times: make(map[string][]time.Time),
		now:   time.Now,
	}
}

func (s *MemActivityStore) Record(ctx context.Context, identity string, ts time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.times[identity]; !ok {
		s.order = append(s.order, identity)
	}
	s.times[identity] = append(s.times[identity], ts)
	return nil
}

func (s *MemActivityStore) Rank(ctx context.Context, window time.Duration, topN int) ([]UserCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-window)
	out := []UserCount{}
	for _, identity := range s.order {
		count := 0
		for _, ts := range s.times[identity] {
			if !ts.Before(cutoff) {
				count++
			}
		}
		if count > 0 {
			out = append(out, UserCount{Identity: identity, Count: count})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if topN >= 0 && len(out) > topN {
		out = out[:topN]
	}
	return out, nil
}
