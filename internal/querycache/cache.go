package querycache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/store"
)

// keyPrefix 所有查询缓存键的命名空间（Clear 按它批量失效）
const keyPrefix = "query:"

// StatusError 带 HTTP 状态码的错误。实现了它的错误（即后端明确拒绝）
// 不做重试；只有传输层失败才重试一次。
type StatusError interface {
	error
	StatusCode() int
}

// Cache 请求缓存：以 (查询键) -> (JSON 值, 抓取时间) 存入 KV，
// 变更成功后由调用方显式 Invalidate 对应的键。
type Cache struct {
	kv     store.KV
	ttl    time.Duration
	logger *zap.Logger

	mu       sync.Mutex
	inflight map[string]*flight
}

type flight struct {
	done chan struct{}
	raw  []byte
	err  error
}

type entry struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Value     json.RawMessage `json:"value"`
}

// New 创建请求缓存
func New(kv store.KV, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{
		kv:       kv,
		ttl:      ttl,
		logger:   logger,
		inflight: make(map[string]*flight),
	}
}

// Key 拼接查询键（"users", page, sortDir → "users:2:desc"）
func Key(parts ...any) string {
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		segs = append(segs, fmt.Sprint(p))
	}
	return strings.Join(segs, ":")
}

// Invalidate 按精确键失效
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := c.kv.Delete(ctx, keyPrefix+key); err != nil {
			c.logger.Warn("failed to invalidate query", zap.String("key", key), zap.Error(err))
		}
	}
	c.logger.Debug("invalidated queries", zap.Strings("keys", keys))
}

// InvalidatePrefix 失效某一前缀下的所有查询（分页/过滤组合共享同一前缀）
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	keys, err := c.kv.ScanKeys(ctx, keyPrefix+prefix+"*")
	if err != nil {
		c.logger.Warn("failed to scan queries", zap.String("prefix", prefix), zap.Error(err))
		return
	}
	for _, key := range keys {
		if err := c.kv.Delete(ctx, key); err != nil {
			c.logger.Warn("failed to invalidate query", zap.String("key", key), zap.Error(err))
		}
	}
}

// Clear 丢弃全部缓存查询（登出时调用）
func (c *Cache) Clear(ctx context.Context) {
	c.InvalidatePrefix(ctx, "")
}

// Fetch 取缓存值；未命中或过期时调用 fetch 并回填。
// 同一个键的并发 Fetch 只触发一次远端调用；传输失败重试一次，
// 带状态码的后端错误不重试。
func Fetch[T any](ctx context.Context, c *Cache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	storeKey := keyPrefix + key

	if raw, err := c.kv.Get(ctx, storeKey); err == nil {
		var ent entry
		if err := json.Unmarshal([]byte(raw), &ent); err == nil {
			var value T
			if err := json.Unmarshal(ent.Value, &value); err == nil {
				c.logger.Debug("query cache hit", zap.String("key", key))
				return value, nil
			}
		}
		// A corrupt entry falls through to a refetch.
	}

	c.mu.Lock()
	if fl, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		select {
		case <-fl.done:
		case <-ctx.Done():
			return zero, ctx.Err()
		}
		if fl.err != nil {
			return zero, fl.err
		}
		var value T
		if err := json.Unmarshal(fl.raw, &value); err != nil {
			return zero, fmt.Errorf("failed to decode in-flight result: %w", err)
		}
		return value, nil
	}

	fl := &flight{done: make(chan struct{})}
	c.inflight[key] = fl
	c.mu.Unlock()

	value, err := fetchOnce(ctx, fetch)
	if err == nil {
		if raw, mErr := json.Marshal(value); mErr == nil {
			fl.raw = raw
			ent := entry{FetchedAt: time.Now(), Value: raw}
			if encoded, eErr := json.Marshal(ent); eErr == nil {
				if sErr := c.kv.Set(ctx, storeKey, string(encoded), c.ttl); sErr != nil {
					c.logger.Warn("failed to store query result", zap.String("key", key), zap.Error(sErr))
				}
			}
		} else {
			err = fmt.Errorf("failed to encode query result: %w", mErr)
		}
	}
	fl.err = err

	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()
	close(fl.done)

	if err != nil {
		return zero, err
	}
	return value, nil
}

// fetchOnce 执行抓取，传输层失败（无 HTTP 状态）重试一次
func fetchOnce[T any](ctx context.Context, fetch func(ctx context.Context) (T, error)) (T, error) {
	value, err := fetch(ctx)
	if err == nil {
		return value, nil
	}
	var statusErr StatusError
	if errors.As(err, &statusErr) {
		return value, err
	}
	if ctx.Err() != nil {
		return value, err
	}
	return fetch(ctx)
}
