package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/crumbworks/pantryplan/internal/planner"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Generator is the shape shared by OpenRouter, Local and Cached.
type Generator interface {
	Generate(ctx context.Context, request planner.GenerationRequest) (planner.Tree, error)
}

// Cached wraps another generator with a redis read-through cache keyed on
// the request. A nil client disables caching; errors from redis degrade to
// a direct generate, never a failed preview.
type Cached struct {
	inner  Generator
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCached(inner Generator, client *redis.Client, ttl time.Duration, logger *zap.Logger) *Cached {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cached{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (cached *Cached) Generate(ctx context.Context, request planner.GenerationRequest) (planner.Tree, error) {
	if cached.client == nil {
		return cached.inner.Generate(ctx, request)
	}

	key := cacheKey(request)
	raw, err := cached.client.Get(ctx, key).Bytes()
	if err == nil {
		tree, decodeErr := planner.Decode(raw)
		if decodeErr == nil && !tree.IsEmpty() {
			return tree, nil
		}
	} else if err != redis.Nil {
		cached.logger.Warn("plan cache read failed", zap.Error(err))
	}

	tree, err := cached.inner.Generate(ctx, request)
	if err != nil {
		return planner.Tree{}, err
	}

	if encoded, encodeErr := tree.Encode(); encodeErr == nil {
		if setErr := cached.client.Set(ctx, key, encoded, cached.ttl).Err(); setErr != nil {
			cached.logger.Warn("plan cache write failed", zap.Error(setErr))
		}
	}
	return tree, nil
}

func cacheKey(request planner.GenerationRequest) string {
	raw, _ := json.Marshal(request)
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("plan:generate:%s", hex.EncodeToString(sum[:12]))
}
