package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores each entry as a JSON document under dir, sharded into
// 256 subdirectories by key digest. Writes go through a temp file and a
// rename, so a concurrent reader (a watch loop next to a server, say) sees
// either the old entry or the new one.
type FileCache struct {
	dir string
}

// NewFileCache opens a cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// fileEntry is the on-disk form. Key guards against digest collisions and
// files copied between cache directories.
type fileEntry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

func (e fileEntry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Get implements Cache. Unreadable, foreign or expired entries count as a
// miss and are removed.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}

	var e fileEntry
	if json.Unmarshal(raw, &e) != nil || e.Key != key || e.expired(time.Now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set implements Cache. A zero ttl stores the entry without expiry.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	e := fileEntry{Key: key, Data: data}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".entry-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete implements Cache. Deleting a missing key is not an error.
func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Clear removes every shard below the cache directory, keeping the
// directory itself.
func (c *FileCache) Clear() error {
	shards, err := os.ReadDir(c.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, s := range shards {
		if err := os.RemoveAll(filepath.Join(c.dir, s.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Dir returns the cache root.
func (c *FileCache) Dir() string { return c.dir }

func (c *FileCache) Close() error { return nil }

func (c *FileCache) path(key string) string {
	sum := Hash([]byte(key))
	return filepath.Join(c.dir, sum[:2], sum[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
