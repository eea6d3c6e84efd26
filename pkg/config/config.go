// Package config loads treemachine's TOML configuration.
//
// The file is read from the path given with --config, or from
// $XDG_CONFIG_HOME/treemachine/config.toml (~/.config/treemachine/config.toml
// when XDG_CONFIG_HOME is unset). A missing default file is not an error;
// [Default] values apply.
//
//	[neo4j]
//	uri = "neo4j://localhost:7687"
//	user = "neo4j"
//	password = "secret"
//	rank_property = "rank"
//
//	[cache]
//	backend = "redis"   # file, redis, mongo or none
//	ttl = "168h"
//
//	[redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//
// Environment variables override the file: TREEMACHINE_NEO4J_URI,
// TREEMACHINE_NEO4J_USER, TREEMACHINE_NEO4J_PASSWORD,
// TREEMACHINE_NEO4J_DATABASE, TREEMACHINE_CACHE_BACKEND,
// TREEMACHINE_REDIS_ADDR, TREEMACHINE_MONGO_URI and TREEMACHINE_SERVER_ADDR.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/letolabs/treemachine/pkg/cache"
	"github.com/letolabs/treemachine/pkg/errors"
	"github.com/letolabs/treemachine/pkg/source"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Backends lists the valid cache backends.
var Backends = []string{BackendFile, BackendRedis, BackendMongo, BackendNone}

// Config is the full configuration.
type Config struct {
	Neo4j  Neo4jConfig  `toml:"neo4j"`
	Cache  CacheConfig  `toml:"cache"`
	Redis  RedisConfig  `toml:"redis"`
	Mongo  MongoConfig  `toml:"mongo"`
	Server ServerConfig `toml:"server"`
}

type Neo4jConfig struct {
	URI          string `toml:"uri"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	RelType      string `toml:"rel_type"`
	RankProperty string `toml:"rank_property"`
}

type CacheConfig struct {
	Backend string        `toml:"backend"`
	Dir     string        `toml:"dir"` // file backend; empty means the XDG cache dir
	TTL     time.Duration `toml:"ttl"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Neo4j: Neo4jConfig{
			URI:          "neo4j://localhost:7687",
			User:         "neo4j",
			RelType:      source.DefaultRelType,
			RankProperty: source.DefaultRankProperty,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     cache.TTLResolve,
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   "treemachine",
			Collection: "cache",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "treemachine", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "treemachine", "config.toml"), nil
}

// Load reads the config at path over the defaults and applies environment
// overrides. An empty path reads DefaultPath, which may be absent. Unknown
// keys are rejected so typos do not pass silently.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	md, err := toml.DecodeFile(path, cfg)
	switch {
	case err == nil:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	case stderrors.Is(err, fs.ErrNotExist) && !explicit:
		cfg = Default()
	case stderrors.Is(err, fs.ErrNotExist):
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	default:
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	for env, dst := range map[string]*string{
		"TREEMACHINE_NEO4J_URI":      &c.Neo4j.URI,
		"TREEMACHINE_NEO4J_USER":     &c.Neo4j.User,
		"TREEMACHINE_NEO4J_PASSWORD": &c.Neo4j.Password,
		"TREEMACHINE_NEO4J_DATABASE": &c.Neo4j.Database,
		"TREEMACHINE_CACHE_BACKEND":  &c.Cache.Backend,
		"TREEMACHINE_REDIS_ADDR":     &c.Redis.Addr,
		"TREEMACHINE_MONGO_URI":      &c.Mongo.URI,
		"TREEMACHINE_SERVER_ADDR":    &c.Server.Addr,
	} {
		if v, ok := os.LookupEnv(env); ok {
			*dst = v
		}
	}
}

// Validate checks enumerations and identifiers.
func (c *Config) Validate() error {
	if !slices.Contains(Backends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend %q (valid: %s)", c.Cache.Backend, strings.Join(Backends, ", "))
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	if err := errors.ValidateIdentifier(c.Neo4j.RankProperty); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "neo4j.rank_property")
	}
	if err := errors.ValidateIdentifier(c.Neo4j.RelType); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "neo4j.rel_type")
	}
	return nil
}

// Source converts the Neo4j section for the source package.
func (n Neo4jConfig) Source() source.Neo4jConfig {
	return source.Neo4jConfig{URI: n.URI, User: n.User, Password: n.Password, Database: n.Database}
}
