package userstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisUserPrefix string = "user/"

type RedisUserStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisUserStore(redisURL string, ttl time.Duration) (*RedisUserStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	// check redis connection
	_, err = rdb.Ping(context.TODO()).Result()
	if err != nil {
		return nil, err
	}
	rus := RedisUserStore{
		Client: rdb,
		TTL:    ttl,
	}
	return &rus, nil
}

func (s *RedisUserStore) GetOrCreate(ctx context.Context, identity string) (*UserRecord, error) {
	raw, err := s.Client.Get(ctx, redisUserPrefix+identity).Bytes()
	if err == redis.Nil {
		return NewUserRecord(identity), nil
	} else if err != nil {
		return nil, err
	}
	var rec UserRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("parsing stored user record: %w", err)
	}
	return &rec, nil
}

func (s *RedisUserStore) Update(ctx context.Context, rec *UserRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, redisUserPrefix+rec.Identity, raw, s.TTL).Err()
}

func (s *RedisUserStore) Purge(ctx context.Context, identity string) error {
	return s.Client.Del(ctx, redisUserPrefix+identity).Err()
}
