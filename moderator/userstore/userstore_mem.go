package userstore

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type MemUserStore struct {
	Data *expirable.LRU[string, *UserRecord]
}

func NewMemUserStore(capacity int, ttl time.Duration) MemUserStore {
	return MemUserStore{
		Data: expirable.NewLRU[string, *UserRecord](capacity, nil, ttl),
	}
}

func (s MemUserStore) GetOrCreate(ctx context.Context, identity string) (*UserRecord, error) {
	rec, ok := s.Data.Get(identity)
	if !ok {
		rec = NewUserRecord(identity)
		s.Data.Add(identity, rec)
	}
	return rec, nil
}

func (s MemUserStore) Update(ctx context.Context, rec *UserRecord) error {
	s.Data.Add(rec.Identity, rec)
	return nil
}

func (s MemUserStore) Purge(ctx context.Context, identity string) error {
	s.Data.Remove(identity)
	return nil
}
