package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/letolabs/treemachine/pkg/cache"
	tmio "github.com/letolabs/treemachine/pkg/io"
	"github.com/letolabs/treemachine/pkg/lineage"
	"github.com/letolabs/treemachine/pkg/resolve"
	"github.com/letolabs/treemachine/pkg/source"
	"github.com/letolabs/treemachine/pkg/synth"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can share one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long resolutions stay cached; zero means cache.TTLResolve.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute loads candidates from src and runs the complete pipeline.
func (r *Runner) Execute(ctx context.Context, src source.Source, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := opts.Logger.With("run", result.RunID)

	// Stage 1: Load
	loadStart := time.Now()
	snap, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src.Name(), err)
	}
	result.Snapshot = snap
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = snap.NodeCount()
	result.Stats.EdgeCount = snap.EdgeCount()

	logger.Info("loaded candidates",
		"source", src.Name(),
		"nodes", snap.NodeCount(),
		"edges", snap.EdgeCount(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Resolve
	resolveStart := time.Now()
	rep, hash, hit, err := r.ResolveWithCacheInfo(ctx, snap, opts)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	result.Report = rep
	result.InputHash = hash
	result.Stats.ResolveTime = time.Since(resolveStart)
	result.CacheInfo.ResolveHit = hit

	logger.Info("resolved conflicts",
		"accepted", len(rep.Accepted),
		"rejected", len(rep.Rejected),
		"removed", len(rep.Removed),
		"cached", hit,
		"duration", result.Stats.ResolveTime)

	// Stage 3: Build
	root, err := synth.Build(snap, rep.Accepted)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Tree = root

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, err := Render(root, rep, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"tips", root.TipCount(),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ResolveWithCacheInfo resolves the snapshot's candidates, reusing a cached
// result unless opts.Refresh is set. It returns the report, the snapshot's
// content hash, and whether the report came from cache.
func (r *Runner) ResolveWithCacheInfo(ctx context.Context, snap *lineage.Snapshot, opts Options) (*resolve.Report, string, bool, error) {
	r.applyLogger(&opts)

	data, err := tmio.MarshalSnapshot(snap)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize snapshot for cache key: %w", err)
	}
	hash := cache.Hash(data)

	resolver := resolve.NewRankResolver(resolve.WithLogger(opts.Logger))
	cacheKey := r.Keyer.ResolveKey(hash, ResolveKeyOpts(resolver))

	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if rep, err := decodeReport(cached); err == nil {
				return rep, hash, true, nil
			}
			// Undecodable entries fall through and are overwritten.
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "error", err)
		}
	}

	rep, err := resolver.ResolveWithReport(ctx, snap, snap.Edges())
	if err != nil {
		return nil, hash, false, err
	}

	var buf bytes.Buffer
	if err := tmio.WriteResult(&buf, tmio.NewResult(resolver.Description(), rep)); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), r.ttl()); err != nil {
			opts.Logger.Warn("cache write failed", "error", err)
		}
	}
	return rep, hash, false, nil
}

func decodeReport(data []byte) (*resolve.Report, error) {
	res, err := tmio.ReadResult(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return res.Report()
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLResolve
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
