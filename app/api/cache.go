package api

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"sync"
	"time"

	"forum/app/models"

	"github.com/bradfitz/gomemcache/memcache"
)

// ErrCacheMiss is returned by CacheClient.Get for absent or expired keys.
var ErrCacheMiss = memcache.ErrCacheMiss

// CacheClient is the common cache interface
type CacheClient interface {
	Get(ctx context.Context, key string, result interface{}) error
	Set(ctx context.Context, key string, data interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ToBytes gob encodes a value
func ToBytes(data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(data)
	return buf.Bytes(), err
}

// FromBytes gob decodes into result
func FromBytes(data []byte, result interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(result)
}

type memcacheClient struct {
	client *memcache.Client
}

// NewMemcacheClient returns a CacheClient backed by memcached at server.
func NewMemcacheClient(server string, timeout time.Duration) CacheClient {
	client := memcache.New(server)
	client.Timeout = timeout
	return &memcacheClient{client: client}
}

func (m *memcacheClient) Get(ctx context.Context, key string, result interface{}) error {
	item, err := m.client.Get(key)
	if err != nil {
		return err
	}
	if err := FromBytes(item.Value, result); err != nil {
		return fmt.Errorf("decoding cached %s: %w", key, err)
	}
	return nil
}

func (m *memcacheClient) Set(ctx context.Context, key string, data interface{}, ttl time.Duration) error {
	value, err := ToBytes(data)
	if err != nil {
		return fmt.Errorf("encoding %s for cache: %w", key, err)
	}
	return m.client.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: memcacheExpiration(ttl),
	})
}

// maxRelativeExpiration is the longest TTL memcached reads as relative.
// Larger values are taken as absolute unix times.
const maxRelativeExpiration = 30 * 24 * time.Hour

// memcacheExpiration converts ttl to memcache seconds. Zero means no expiry
// to memcached, so positive sub-second TTLs round up to one second.
func memcacheExpiration(ttl time.Duration) int32 {
	switch {
	case ttl <= 0:
		return 0
	case ttl > maxRelativeExpiration:
		ttl = maxRelativeExpiration
	}
	return int32((ttl + time.Second - 1) / time.Second)
}

func (m *memcacheClient) Delete(ctx context.Context, key string) error {
	err := m.client.Delete(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil
	}
	return err
}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

type memoryClient struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryClient returns an in-process CacheClient. Values are gob encoded
// like they are for memcache so callers never share mutable state.
func NewMemoryClient() CacheClient {
	return &memoryClient{entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *memoryClient) Get(ctx context.Context, key string, result interface{}) error {
	m.mu.Lock()
	entry, ok := m.entries[key]
	if ok && !entry.expires.IsZero() && !m.now().Before(entry.expires) {
		delete(m.entries, key)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return ErrCacheMiss
	}
	return FromBytes(entry.value, result)
}

func (m *memoryClient) Set(ctx context.Context, key string, data interface{}, ttl time.Duration) error {
	value, err := ToBytes(data)
	if err != nil {
		return fmt.Errorf("encoding %s for cache: %w", key, err)
	}

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expires = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

func (m *memoryClient) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// CommentSource is what CachedComments wraps.
type CommentSource interface {
	GetCommentsByPostID(ctx context.Context, postID, page int) ([]models.Comment, error)
	CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error)
	PageSize() int
}

// CachedComments caches comment pages in front of a CommentSource. Cache
// failures are logged and fall through to the source.
type CachedComments struct {
	source CommentSource
	cache  CacheClient
	ttl    time.Duration

	mu   sync.Mutex
	keys map[int]map[string]struct{}
}

func NewCachedComments(source CommentSource, cache CacheClient, ttl time.Duration) *CachedComments {
	return &CachedComments{
		source: source,
		cache:  cache,
		ttl:    ttl,
		keys:   make(map[int]map[string]struct{}),
	}
}

func commentPageKey(postID, page, limit int) string {
	return fmt.Sprintf("comments:%d:%d:%d", postID, page, limit)
}

func (c *CachedComments) PageSize() int {
	return c.source.PageSize()
}

func (c *CachedComments) GetCommentsByPostID(ctx context.Context, postID, page int) ([]models.Comment, error) {
	key := commentPageKey(postID, page, c.source.PageSize())

	var cached []models.Comment
	err := c.cache.Get(ctx, key, &cached)
	switch {
	case err == nil:
		log.Debugf("cache hit %s", key)
		if cached == nil {
			cached = []models.Comment{}
		}
		return cached, nil
	case !errors.Is(err, ErrCacheMiss):
		log.Warningf("cache get %s: %v", key, err)
	}

	comments, err := c.source.GetCommentsByPostID(ctx, postID, page)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, comments, c.ttl); err != nil {
		log.Warningf("cache set %s: %v", key, err)
	} else {
		c.remember(postID, key)
	}
	return comments, nil
}

// CreateComment creates the comment and drops every cached page of its post.
func (c *CachedComments) CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	created, err := c.source.CreateComment(ctx, comment)
	if err != nil {
		return created, err
	}
	c.Invalidate(ctx, created.PostID)
	return created, nil
}

// Invalidate removes the cached pages of postID written by this client.
func (c *CachedComments) Invalidate(ctx context.Context, postID int) {
	c.mu.Lock()
	keys := c.keys[postID]
	delete(c.keys, postID)
	c.mu.Unlock()

	for key := range keys {
		if err := c.cache.Delete(ctx, key); err != nil {
			log.Warningf("cache delete %s: %v", key, err)
		}
	}
}

func (c *CachedComments) remember(postID int, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.keys[postID] == nil {
		c.keys[postID] = make(map[string]struct{})
	}
	c.keys[postID][key] = struct{}{}
}
