package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letolabs/treemachine/pkg/cache"
	"github.com/letolabs/treemachine/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, BackendFile, cfg.Cache.Backend)
	assert.Equal(t, cache.TTLResolve, cfg.Cache.TTL)
	assert.Equal(t, "rank", cfg.Neo4j.RankProperty)
	assert.Equal(t, "STREECHILDOF", cfg.Neo4j.RelType)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[neo4j]
uri = "neo4j://graph:7687"
password = "secret"
rank_property = "support"

[cache]
backend = "redis"
ttl = "2h"

[redis]
addr = "redis:6379"
db = 2
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "neo4j://graph:7687", cfg.Neo4j.URI)
	assert.Equal(t, "neo4j", cfg.Neo4j.User, "unset keys keep defaults")
	assert.Equal(t, "support", cfg.Neo4j.RankProperty)
	assert.Equal(t, BackendRedis, cfg.Cache.Backend)
	assert.Equal(t, 2*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "[neo4j]\nuri = \"neo4j://file:7687\"\n")
	t.Setenv("TREEMACHINE_NEO4J_URI", "neo4j://env:7687")
	t.Setenv("TREEMACHINE_CACHE_BACKEND", "none")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "neo4j://env:7687", cfg.Neo4j.URI)
	assert.Equal(t, BackendNone, cfg.Cache.Backend)
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Server, cfg.Server)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", "[neo4j\nuri ="},
		{"unknown key", "[neo4j]\nurl = \"typo\"\n"},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n"},
		{"unsafe rank property", "[neo4j]\nrank_property = \"rank; DROP\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/treemachine/config.toml", p)
}

func TestNeo4jSource(t *testing.T) {
	n := Neo4jConfig{URI: "u", User: "a", Password: "p", Database: "d"}
	src := n.Source()
	assert.Equal(t, "u", src.URI)
	assert.Equal(t, "d", src.Database)
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	cfg := Default()
	cfg.Cache.Backend = BackendNone
	c, err := cfg.OpenCache(ctx, "")
	require.NoError(t, err)
	_, hit, _ := c.Get(ctx, "k")
	assert.False(t, hit)

	cfg.Cache.Backend = BackendFile
	dir := t.TempDir()
	c, err = cfg.OpenCache(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, "resolve:k", []byte("v"), time.Hour))
	data, hit, err := c.Get(ctx, "resolve:k")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte("v"), data)
}
