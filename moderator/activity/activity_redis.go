package activity

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	redisActivityPrefix  string = "activity/"
	redisActivityUserKey string = "activity-users"
)

// RedisActivityStore keeps one sorted set of event timestamps per identity,
// plus a sorted set of identities scored by first appearance (for stable
// tie-breaking). Entries older than Retention are trimmed on write, so ranking
// windows must stay below the retention period.
type RedisActivityStore struct {
	Client    *redis.Client
	Retention time.Duration
}

func NewRedisActivityStore(redisURL string, retention time.Duration) (*RedisActivityStore, error) {
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
	ras := RedisActivityStore{
		Client:    rdb,
		Retention: retention,
	}
	return &ras, nil
}

func (s *RedisActivityStore) Record(ctx context.Context, identity string, ts time.Time) error {
	key := redisActivityPrefix + identity

	// single redis round-trip per event
	multi := s.Client.Pipeline()
	multi.ZAddNX(ctx, redisActivityUserKey, redis.Z{
		Score:  float64(ts.Unix()),
		Member: identity,
	})
	multi.ZAdd(ctx, key, redis.Z{
		Score:  float64(ts.Unix()),
		Member: strconv.FormatInt(ts.UnixNano(), 10),
	})
	if s.Retention > 0 {
		horizon := ts.Add(-s.Retention).Unix()
		multi.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(horizon, 10))
		multi.Expire(ctx, key, s.Retention)
	}
	_, err := multi.Exec(ctx)
	return err
}

func (s *RedisActivityStore) Rank(ctx context.Context, window time.Duration, topN int) ([]UserCount, error) {
	// identities in first-appearance order
	identities, err := s.Client.ZRange(ctx, redisActivityUserKey, 0, -1).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	if len(identities) == 0 {
		return []UserCount{}, nil
	}

	cutoff := strconv.FormatInt(time.Now().Add(-window).Unix(), 10)
	multi := s.Client.Pipeline()
	cmds := make([]*redis.IntCmd, len(identities))
	for i, identity := range identities {
		cmds[i] = multi.ZCount(ctx, redisActivityPrefix+identity, cutoff, "+inf")
	}
	if _, err := multi.Exec(ctx); err != nil && err != redis.Nil {
		return nil, err
	}

	out := []UserCount{}
	for i, identity := range identities {
		count := int(cmds[i].Val())
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
