package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DhavalSuthar-24/crease/internal/match"
)

// LiveMatchTTL bounds how long an abandoned working copy survives.
const LiveMatchTTL = 24 * time.Hour

// RedisStore shares the working copy so viewers can poll it.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps client. A zero ttl uses LiveMatchTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = LiveMatchTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func stateKey(matchID string) string    { return fmt.Sprintf("match:%s:state", matchID) }
func previousKey(matchID string) string { return fmt.Sprintf("match:%s:previous", matchID) }

func (r *RedisStore) Load(ctx context.Context, matchID string) (*match.State, error) {
	vals, err := r.client.MGet(ctx, stateKey(matchID), previousKey(matchID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load match %s: %w", matchID, err)
	}
	st := &match.State{}
	current, ok := vals[0].(string)
	if !ok {
		return nil, match.ErrMatchNotFound
	}
	if err := json.Unmarshal([]byte(current), &st.Current); err != nil {
		return nil, fmt.Errorf("decode match %s: %w", matchID, err)
	}
	if prev, ok := vals[1].(string); ok {
		if err := json.Unmarshal([]byte(prev), &st.Previous); err != nil {
			return nil, fmt.Errorf("decode undo slot of %s: %w", matchID, err)
		}
	}
	return st, nil
}

func (r *RedisStore) Save(ctx context.Context, state *match.State) error {
	if state == nil || state.Current == nil {
		return match.ErrStateNotFound
	}
	id := state.Current.MatchID
	data, err := json.Marshal(state.Current)
	if err != nil {
		return fmt.Errorf("marshaling match: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, stateKey(id), data, r.ttl)
	if state.Previous != nil {
		prev, err := json.Marshal(state.Previous)
		if err != nil {
			return fmt.Errorf("marshaling undo slot: %w", err)
		}
		pipe.Set(ctx, previousKey(id), prev, r.ttl)
	} else {
		pipe.Del(ctx, previousKey(id))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisStore) Delete(ctx context.Context, matchID string) error {
	err := r.client.Del(ctx, stateKey(matchID), previousKey(matchID)).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}
