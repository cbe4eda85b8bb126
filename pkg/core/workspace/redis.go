package workspace

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"dealdesk/pkg/models"
)

// =============================================================================
// REDIS STORE (shared between API instances)
// =============================================================================

const (
	redisKeyPrefix = "dealdesk:workbook:"
	redisIndexKey  = "dealdesk:workbooks"
)

// RedisStore keeps workbooks as JSON values with a set index for
// listing. Values never expire.
type RedisStore struct {
	client *redis.Client
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to the Redis instance at addr.
func NewRedisStore(addr string) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisStore{client: rdb}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.CompanyWorkbook, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("workbook '%s' not found", id)
	}
	if err != nil {
		return nil, err
	}

	var wb models.CompanyWorkbook
	if err := json.Unmarshal([]byte(raw), &wb); err != nil {
		return nil, err
	}
	return &wb, nil
}

func (s *RedisStore) Put(ctx context.Context, wb *models.CompanyWorkbook) error {
	if wb == nil || wb.ID == "" {
		return fmt.Errorf("workbook must have an ID")
	}

	raw, err := json.Marshal(wb)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, redisKeyPrefix+wb.ID, raw, 0).Err(); err != nil {
		return err
	}
	return s.client.SAdd(ctx, redisIndexKey, wb.ID).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, redisKeyPrefix+id).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("workbook '%s' not found", id)
	}
	return s.client.SRem(ctx, redisIndexKey, id).Err()
}

func (s *RedisStore) List(ctx context.Context) ([]*models.CompanyWorkbook, error) {
	ids, err := s.client.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*models.CompanyWorkbook, 0, len(ids))
	for _, id := range ids {
		wb, err := s.Get(ctx, id)
		if err != nil {
			// The index can lag a concurrent delete.
			continue
		}
		out = append(out, wb)
	}
	byRecency(out)
	return out, nil
}
