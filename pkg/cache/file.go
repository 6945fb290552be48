package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/votecloud/votecloud/pkg/errors"
)

// FileCache stores each entry as two files in one directory: the raw bytes
// (<name>.bin, directly viewable for PNGs) and a small JSON sidecar
// (<name>.meta) with the key, size and expiry.
//
// Both files are written through a temporary file and a rename, so a reader
// never sees a half-written artifact. A sidecar whose size does not match
// its data file is treated as a miss.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache in dir, creating it if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create cache dir %s", dir)
	}
	return &FileCache{dir: dir}, nil
}

type fileMeta struct {
	Key       string    `json:"key"`
	Size      int       `json:"size"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// Get retrieves a value from the cache.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	base := c.base(key)

	raw, err := os.ReadFile(base + ".meta")
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeStorage, err, "read cache entry %s", key)
	}

	var meta fileMeta
	if err := json.Unmarshal(raw, &meta); err != nil || meta.Key != key {
		c.remove(base)
		return nil, false, nil
	}
	if !meta.ExpiresAt.IsZero() && time.Now().After(meta.ExpiresAt) {
		c.remove(base)
		return nil, false, nil
	}

	data, err := os.ReadFile(base + ".bin")
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeStorage, err, "read cache entry %s", key)
	}
	if len(data) != meta.Size {
		return nil, false, nil
	}
	return data, true, nil
}

// Set stores a value in the cache. A zero ttl never expires.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	meta := fileMeta{Key: key, Size: len(data)}
	if ttl > 0 {
		meta.ExpiresAt = time.Now().Add(ttl)
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode cache metadata")
	}

	base := c.base(key)
	if err := c.write(base+".bin", data); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write cache entry %s", key)
	}
	if err := c.write(base+".meta", raw); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write cache entry %s", key)
	}
	return nil
}

// Delete removes a value from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	base := c.base(key)
	for _, path := range []string{base + ".meta", base + ".bin"} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeStorage, err, "delete cache entry %s", key)
		}
	}
	return nil
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string {
	return c.dir
}

// Path returns the data file for key, e.g. "<dir>/leaderboard_png-1a2b3c4d.bin".
func (c *FileCache) Path(key string) string {
	return c.base(key) + ".bin"
}

func (c *FileCache) write(path string, data []byte) error {
	tmp, err := os.CreateTemp(c.dir, ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (c *FileCache) remove(base string) {
	_ = os.Remove(base + ".meta")
	_ = os.Remove(base + ".bin")
}

func (c *FileCache) base(key string) string {
	return filepath.Join(c.dir, fileName(key))
}

// fileName turns a key into a readable, collision-free file name: unsafe
// characters become underscores and a short hash of the original key is
// appended.
func fileName(key string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, key)
	if len(safe) > 64 {
		safe = safe[:64]
	}
	sum := sha256.Sum256([]byte(key))
	return safe + "-" + hex.EncodeToString(sum[:4])
}

var _ Cache = (*FileCache)(nil)
