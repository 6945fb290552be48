// Package config loads the votecloud runtime configuration from TOML.
//
// A missing file is not an error: every field has a default, so a bare
// `votecloud serve` runs with file-backed storage under ./data.
//
//	[server]
//	addr = ":8000"
//
//	[store]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/votecloud/votecloud/pkg/errors"
)

// Store backends.
const (
	StoreFile  = "file"
	StoreMongo = "mongo"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Defaults applied by SetDefaults.
const (
	DefaultAddr          = ":8000"
	DefaultDataDir       = "data"
	DefaultCacheDir      = "data/cache"
	DefaultMongoURI      = "mongodb://localhost:27017"
	DefaultMongoDatabase = "votecloud"
	DefaultRedisAddr     = "localhost:6379"
	DefaultPrefix        = "votecloud:"
)

// Config is the top-level configuration document.
type Config struct {
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
	Cache  CacheConfig  `toml:"cache"`
	Render RenderConfig `toml:"render"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// StoreConfig selects where contacts, questions and votes live.
type StoreConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// CacheConfig selects where rendered leaderboards are kept.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Prefix        string `toml:"prefix"`
}

// RenderConfig holds word cloud options.
// Seed 0 draws a fresh seed for every render.
type RenderConfig struct {
	Seed uint64 `toml:"seed"`
}

// Default returns a configuration with every default applied.
func Default() Config {
	var c Config
	c.SetDefaults()
	return c
}

// SetDefaults fills zero-valued fields.
func (c *Config) SetDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Store.Backend == "" {
		c.Store.Backend = StoreFile
	}
	if c.Store.Dir == "" {
		c.Store.Dir = DefaultDataDir
	}
	if c.Store.MongoURI == "" {
		c.Store.MongoURI = DefaultMongoURI
	}
	if c.Store.MongoDatabase == "" {
		c.Store.MongoDatabase = DefaultMongoDatabase
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = CacheFile
	}
	if c.Cache.Dir == "" {
		c.Cache.Dir = DefaultCacheDir
	}
	if c.Cache.RedisAddr == "" {
		c.Cache.RedisAddr = DefaultRedisAddr
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = DefaultPrefix
	}
}

// Validate rejects unknown backends and empty addresses.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreFile, StoreMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server address is empty")
	}
	return nil
}

// Load reads path, applies defaults and validates the result.
// An empty path or a missing file yields Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML data, applies defaults and validates the result.
func Parse(data []byte) (Config, error) {
	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
