package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/elotrack/internal/model"
	"github.com/mcoot/elotrack/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultConfig().KeyPrefix
	}
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Load(ctx context.Context) (*model.Snapshot, error) {
	var (
		tot     *redis.StringCmd
		players *redis.StringSliceCmd
		sets    *redis.StringSliceCmd
	)

	// Read all three keys from one MULTI so a concurrent Save is never half-seen
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		tot = pipe.Get(ctx, s.totSetsKey())
		players = pipe.LRange(ctx, s.playersKey(), 0, -1)
		sets = pipe.LRange(ctx, s.setsKey(), 0, -1)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	total, err := tot.Int64()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: tot_sets: %v", model.ErrCorruptState, err)
	}

	snap := &model.Snapshot{TotalSets: int32(total)}
	if err := decodeRows(players.Val(), &snap.Players); err != nil {
		return nil, err
	}
	if err := decodeRows(sets.Val(), &snap.Sets); err != nil {
		return nil, err
	}
	return snap, nil
}

func decodeRows[T any](values []string, rows *[]T) error {
	for i, v := range values {
		var row T
		if err := json.Unmarshal([]byte(v), &row); err != nil {
			return fmt.Errorf("%w: row %d: %v", model.ErrCorruptState, i, err)
		}
		*rows = append(*rows, row)
	}
	return nil
}

// Save replaces all keys in one MULTI/EXEC transaction
func (s *Storage) Save(ctx context.Context, snap *model.Snapshot) error {
	players, err := encodeRows(snap.Players)
	if err != nil {
		return err
	}
	sets, err := encodeRows(snap.Sets)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.playersKey(), s.setsKey(), s.totSetsKey())
		if len(players) > 0 {
			pipe.RPush(ctx, s.playersKey(), players...)
		}
		if len(sets) > 0 {
			pipe.RPush(ctx, s.setsKey(), sets...)
		}
		pipe.Set(ctx, s.totSetsKey(), snap.TotalSets, 0)
		return nil
	})
	return err
}

func encodeRows[T any](rows []T) ([]interface{}, error) {
	out := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			return nil, err
		}
		out = append(out, string(data))
	}
	return out, nil
}
