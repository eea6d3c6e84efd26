package config

import (
	"context"
	"fmt"

	"github.com/letolabs/treemachine/pkg/cache"
)

// OpenCache opens the configured cache backend, instrumented for
// observability. fileDir is used by the file backend when cache.dir is
// empty.
func (c *Config) OpenCache(ctx context.Context, fileDir string) (cache.Cache, error) {
	var (
		backend cache.Cache
		err     error
	)
	switch c.Cache.Backend {
	case BackendNone:
		backend = cache.NewNullCache()
	case BackendFile:
		dir := c.Cache.Dir
		if dir == "" {
			dir = fileDir
		}
		backend, err = cache.NewFileCache(dir)
	case BackendRedis:
		backend, err = cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
	case BackendMongo:
		backend, err = cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:        c.Mongo.URI,
			Database:   c.Mongo.Database,
			Collection: c.Mongo.Collection,
		})
	default:
		return nil, fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", c.Cache.Backend, err)
	}
	return cache.Instrument(backend), nil
}
