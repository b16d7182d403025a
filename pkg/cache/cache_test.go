package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var (
	errTransient = errors.New("transient")
	errPermanent = errors.New("permanent")
)

func init() {
	retryDelay = time.Millisecond
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	lk1 := k.LayoutKey("hash123", LayoutKeyOpts{Version: "v1"})
	lk2 := k.LayoutKey("hash123", LayoutKeyOpts{Version: "v2"})
	if lk1 == lk2 {
		t.Error("Different LayoutKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(lk1, "layout:") || len(lk1) != len("layout:")+64 {
		t.Errorf("LayoutKey unexpected: %s", lk1)
	}
	if lk1 != k.LayoutKey("hash123", LayoutKeyOpts{Version: "v1"}) {
		t.Error("LayoutKey should be deterministic")
	}

	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png"})
	ak3 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", NoDoctype: true})
	if ak1 == ak2 || ak1 == ak3 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(ak1, "artifact:") {
		t.Errorf("ArtifactKey unexpected: %s", ak1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "user:123:")

	want := "user:123:" + inner.LayoutKey("abc", LayoutKeyOpts{})
	if got := scoped.LayoutKey("abc", LayoutKeyOpts{}); got != want {
		t.Errorf("ScopedKeyer LayoutKey = %s, want %s", got, want)
	}

	artifactKey := scoped.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"})
	if !strings.HasPrefix(artifactKey, "user:123:artifact:") {
		t.Errorf("ScopedKeyer ArtifactKey should be prefixed: %s", artifactKey)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.LayoutKey("abc", LayoutKeyOpts{})
	if key != "prefix:"+NewDefaultKeyer().LayoutKey("abc", LayoutKeyOpts{}) {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "key"); hit || err != nil {
		t.Fatalf("Get on empty cache = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit || string(data) != "value" {
		t.Fatalf("Get = %q, %v, %v; want value, true, nil", data, hit, err)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	c.Set(ctx, "key", []byte("value"), time.Nanosecond)
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expired entry should miss")
	}

	c.Set(ctx, "forever", []byte("value"), 0)
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should not expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	c.Set(ctx, "key", []byte("value"), time.Hour)
	os.WriteFile(c.path("key"), []byte("not json"), 0644)

	if _, hit, err := c.Get(ctx, "key"); hit || err != nil {
		t.Errorf("corrupt entry = hit %v, err %v; want miss", hit, err)
	}
	if _, err := os.Stat(c.path("key")); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)

	for _, key := range []string{"a", "b", "c"} {
		c.Set(ctx, key, []byte(key), time.Hour)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Clear left %d entries", len(entries))
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}
}

func TestRemoteConfigRequired(t *testing.T) {
	ctx := context.Background()
	if _, err := NewRedisCache(ctx, RedisConfig{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewRedisCache without addr error = %v, want ErrInvalidConfig", err)
	}
	if _, err := NewMongoCache(ctx, MongoConfig{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewMongoCache without uri error = %v, want ErrInvalidConfig", err)
	}
}

// testRemote exercises a live backend. Set BLOCKGRID_TEST_REDIS or
// BLOCKGRID_TEST_MONGO to run it.
func testRemote(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()
	key := "test:" + t.Name()

	if err := c.Set(ctx, key, []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "value" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("Get after Delete should miss")
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("BLOCKGRID_TEST_REDIS")
	if addr == "" {
		t.Skip("BLOCKGRID_TEST_REDIS not set")
	}
	c, err := NewRedisCache(context.Background(), RedisConfig{Addr: addr, Prefix: "blockgrid-test:"})
	if err != nil {
		t.Fatalf("NewRedisCache error: %v", err)
	}
	defer c.Close()
	testRemote(t, c)
}

func TestMongoCache(t *testing.T) {
	uri := os.Getenv("BLOCKGRID_TEST_MONGO")
	if uri == "" {
		t.Skip("BLOCKGRID_TEST_MONGO not set")
	}
	c, err := NewMongoCache(context.Background(), MongoConfig{URI: uri, Database: "blockgrid_test"})
	if err != nil {
		t.Fatalf("NewMongoCache error: %v", err)
	}
	defer c.Close()
	testRemote(t, c)
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(errTransient)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != errTransient.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(errPermanent) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return errPermanent
	})
	if err != errPermanent {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(errTransient)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errTransient)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

type recordingCache struct {
	NullCache
	ttl time.Duration
}

func (c *recordingCache) Set(_ context.Context, _ string, _ []byte, ttl time.Duration) error {
	c.ttl = ttl
	return nil
}

func TestWithTTL(t *testing.T) {
	inner := &recordingCache{}
	c := WithTTL(inner, time.Minute)
	c.Set(context.Background(), "key", nil, time.Hour)
	if inner.ttl != time.Minute {
		t.Errorf("ttl = %v, want 1m", inner.ttl)
	}

	if WithTTL(inner, 0) != Cache(inner) {
		t.Error("WithTTL(c, 0) should return c unchanged")
	}
}

func TestFileCacheForeignEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	c.Set(ctx, "layout:a", []byte("A"), 0)
	raw, _ := os.ReadFile(c.path("layout:a"))
	os.MkdirAll(filepath.Dir(c.path("layout:b")), 0o755)
	os.WriteFile(c.path("layout:b"), raw, 0o644)

	if _, hit, _ := c.Get(ctx, "layout:b"); hit {
		t.Error("entry stored under another key should miss")
	}
	if data, hit, _ := c.Get(ctx, "layout:a"); !hit || string(data) != "A" {
		t.Errorf("original entry = %q, hit %v", data, hit)
	}
}

func TestFileCacheLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	for i := 0; i < 3; i++ {
		if err := c.Set(ctx, "artifact:x", []byte{byte(i)}, time.Hour); err != nil {
			t.Fatalf("Set error: %v", err)
		}
	}

	entries, _ := os.ReadDir(filepath.Dir(c.path("artifact:x")))
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("shard contents = %v, want a single entry", names)
	}
}
