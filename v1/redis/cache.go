package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/HTTPArchive/tech-report-apis/v1/query"
)

// Cache is a read-through query.Store. Results of the wrapped store are
// kept for the configured TTL; Redis failures are logged and the wrapped
// store is read instead.
type Cache struct {
	client *RedisClient
	next   query.Store
	ttl    time.Duration
	prefix string
}

// NewCache wraps next with a Redis-backed result cache.
func NewCache(client *RedisClient, next query.Store) *Cache {
	return &Cache{
		client: client,
		next:   next,
		ttl:    client.cfg.TTL,
		prefix: client.cfg.KeyPrefix,
	}
}

type cachedDocument struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

type cachedMax struct {
	Found bool            `json:"found"`
	Value json.RawMessage `json:"value,omitempty"`
}

// Query implements query.Store.
func (c *Cache) Query(ctx context.Context, spec query.QuerySpec) ([]query.Document, error) {
	key, err := c.queryKey(spec)
	if err != nil {
		return c.next.Query(ctx, spec)
	}

	if raw, ok := c.get(ctx, key); ok {
		docs, err := decodeDocuments(raw)
		if err == nil {
			return docs, nil
		}
		c.client.logger.Warn("Discarding undecodable cache entry", err, map[string]interface{}{"key": key})
	}

	docs, err := c.next.Query(ctx, spec)
	if err != nil {
		return nil, err
	}
	if raw, err := encodeDocuments(docs); err == nil {
		c.set(ctx, key, raw)
	}
	return docs, nil
}

// MaxValue implements query.Store.
func (c *Cache) MaxValue(ctx context.Context, collection, field string) (any, bool, error) {
	key := c.prefix + "max:" + collection + ":" + field

	if raw, ok := c.get(ctx, key); ok {
		var entry cachedMax
		if err := json.Unmarshal(raw, &entry); err == nil {
			if !entry.Found {
				return nil, false, nil
			}
			if v, err := query.DecodeValue(entry.Value); err == nil {
				return v, true, nil
			}
		}
	}

	v, found, err := c.next.MaxValue(ctx, collection, field)
	if err != nil {
		return nil, false, err
	}
	entry := cachedMax{Found: found}
	if found {
		if entry.Value, err = json.Marshal(v); err != nil {
			return v, found, nil
		}
	}
	if raw, err := json.Marshal(entry); err == nil {
		c.set(ctx, key, raw)
	}
	return v, found, nil
}

// queryKey derives a stable key from the serialized spec.
func (c *Cache) queryKey(spec query.QuerySpec) (string, error) {
	raw, err := json.Marshal(spec)
	if err != nil {
		return "", err
	}
	return c.prefix + "query:" + spec.Collection + ":" + strconv.FormatUint(xxhash.Sum64(raw), 16), nil
}

func (c *Cache) get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := c.client.Client().Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.client.logger.Warn("Cache read failed", err, map[string]interface{}{"key": key})
		}
		return nil, false
	}
	return raw, true
}

func (c *Cache) set(ctx context.Context, key string, raw []byte) {
	if err := c.client.Client().Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.client.logger.Warn("Cache write failed", err, map[string]interface{}{"key": key})
	}
}

func encodeDocuments(docs []query.Document) ([]byte, error) {
	entries := make([]cachedDocument, len(docs))
	for i, doc := range docs {
		data, err := json.Marshal(doc.Data)
		if err != nil {
			return nil, err
		}
		entries[i] = cachedDocument{ID: doc.ID, Data: data}
	}
	return json.Marshal(entries)
}

func decodeDocuments(raw []byte) ([]query.Document, error) {
	var entries []cachedDocument
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	docs := make([]query.Document, len(entries))
	for i, e := range entries {
		data, err := query.DecodeData(e.Data)
		if err != nil {
			return nil, err
		}
		docs[i] = query.Document{ID: e.ID, Data: data}
	}
	return docs, nil
}
