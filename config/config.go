// Package config loads cache settings from a file and ARRAYCACHE_* environment
// variables and turns them into arraycache.Options.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"github.com/unkn0wn-root/arraycache"
	"github.com/unkn0wn-root/arraycache/codec"
	"github.com/unkn0wn-root/arraycache/hashlog"
	pr "github.com/unkn0wn-root/arraycache/provider"
	"github.com/unkn0wn-root/arraycache/provider/bigcache"
	"github.com/unkn0wn-root/arraycache/provider/disk"
	"github.com/unkn0wn-root/arraycache/provider/redis"
	"github.com/unkn0wn-root/arraycache/provider/ristretto"
	"github.com/unkn0wn-root/arraycache/provider/tiered"
)

// EnvPrefix prefixes environment overrides: ARRAYCACHE_DIR, ARRAYCACHE_REDIS_ADDR, ...
const EnvPrefix = "ARRAYCACHE"

// Config stores all cache settings.
type Config struct {
	Dir           string       `mapstructure:"dir"`
	Format        string       `mapstructure:"format"`
	Disabled      bool         `mapstructure:"disabled"`
	Verbose       bool         `mapstructure:"verbose"`
	MaxEntryBytes int          `mapstructure:"max_entry_bytes"`
	Memory        MemoryConfig `mapstructure:"memory"`
	Store         StoreConfig  `mapstructure:"store"`
	Log           LogConfig    `mapstructure:"log"`
	Redis         RedisConfig  `mapstructure:"redis"`
}

// MemoryConfig puts an in-process tier in front of the entry store.
type MemoryConfig struct {
	Backend      string        `mapstructure:"backend"`        // "", "ristretto", "bigcache"
	MaxCostBytes int64         `mapstructure:"max_cost_bytes"` // ristretto budget
	LifeWindow   time.Duration `mapstructure:"life_window"`    // bigcache entry lifetime
}

type StoreConfig struct {
	Backend string `mapstructure:"backend"` // "disk", "redis"
}

type LogConfig struct {
	Backend string `mapstructure:"backend"` // "file", "memory", "redis"
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	Namespace string `mapstructure:"namespace"`
}

// Load reads configPath (any format viper understands) and applies environment
// overrides. With an empty path it looks for arraycache.{yaml,json,toml} in the
// working directory; a missing file there is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("arraycache")
	}

	v.SetDefault("dir", arraycache.DefaultDir)
	v.SetDefault("format", codec.FormatCBOR.String())
	v.SetDefault("disabled", false)
	v.SetDefault("verbose", false)
	v.SetDefault("max_entry_bytes", 0)
	v.SetDefault("memory.backend", "")
	v.SetDefault("memory.max_cost_bytes", 64<<20)
	v.SetDefault("memory.life_window", 24*time.Hour)
	v.SetDefault("store.backend", "disk")
	v.SetDefault("log.backend", "file")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.namespace", "default")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return &cfg, nil
}

// Options builds cache options for cfg. Backends that need Redis share one client.
func (cfg *Config) Options(logger arraycache.Logger, hooks arraycache.Hooks) (arraycache.Options, error) {
	format, err := codec.ParseFormat(cfg.Format)
	if err != nil {
		return arraycache.Options{}, fmt.Errorf("config: %w", err)
	}
	dir := cfg.Dir
	if dir == "" {
		dir = arraycache.DefaultDir
	}

	var client goredis.UniversalClient
	redisClient := func() (goredis.UniversalClient, error) {
		if client != nil {
			return client, nil
		}
		if cfg.Redis.Addr == "" {
			return nil, errors.New("config: redis.addr is required for redis backends")
		}
		client = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return client, nil
	}

	var log hashlog.Log
	switch cfg.Log.Backend {
	case "", "file":
		log = hashlog.NewFile(dir)
	case "memory":
		log = hashlog.NewMemory()
	case "redis":
		rdb, err := redisClient()
		if err != nil {
			return arraycache.Options{}, err
		}
		log = hashlog.NewRedis(rdb, cfg.Redis.Namespace)
	default:
		return arraycache.Options{}, fmt.Errorf("config: unknown log.backend %q", cfg.Log.Backend)
	}

	var store pr.Provider
	switch cfg.Store.Backend {
	case "", "disk":
		store = disk.New(dir)
	case "redis":
		rdb, err := redisClient()
		if err != nil {
			return arraycache.Options{}, err
		}
		// the redis log closes a shared client
		store, err = redis.New(redis.Config{
			Client:      rdb,
			Namespace:   cfg.Redis.Namespace,
			CloseClient: cfg.Log.Backend != "redis",
		})
		if err != nil {
			return arraycache.Options{}, fmt.Errorf("config: %w", err)
		}
	default:
		return arraycache.Options{}, fmt.Errorf("config: unknown store.backend %q", cfg.Store.Backend)
	}

	switch cfg.Memory.Backend {
	case "":
	case "ristretto":
		front, err := ristretto.New(ristretto.DefaultConfig(cfg.Memory.MaxCostBytes))
		if err != nil {
			return arraycache.Options{}, fmt.Errorf("config: memory: %w", err)
		}
		store = tiered.New(front, store)
	case "bigcache":
		front, err := bigcache.New(bigcache.Config{LifeWindow: cfg.Memory.LifeWindow})
		if err != nil {
			return arraycache.Options{}, fmt.Errorf("config: memory: %w", err)
		}
		store = tiered.New(front, store)
	default:
		return arraycache.Options{}, fmt.Errorf("config: unknown memory.backend %q", cfg.Memory.Backend)
	}

	return arraycache.Options{
		Dir:           dir,
		Format:        format,
		Provider:      store,
		Log:           log,
		MaxEntryBytes: cfg.MaxEntryBytes,
		Logger:        logger,
		Hooks:         hooks,
		Disabled:      cfg.Disabled,
		Verbose:       cfg.Verbose,
	}, nil
}

// New builds a cache from cfg.
func (cfg *Config) New(logger arraycache.Logger, hooks arraycache.Hooks) (*arraycache.Cache, error) {
	opts, err := cfg.Options(logger, hooks)
	if err != nil {
		return nil, err
	}
	return arraycache.New(opts)
}
