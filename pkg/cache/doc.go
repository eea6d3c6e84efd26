// Package cache stores resolution results so repeated runs over the same
// candidate data skip the resolver.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP API
//   - [MongoCache]: a MongoDB collection with a TTL index
//
// All backends satisfy [Cache]. Wrap one with [Instrument] to emit
// observability cache events.
//
// # Keys
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the canonical input bytes
// together with the options that influence the result, so a key changes
// whenever either does:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ResolveKey(cache.Hash(input), cache.ResolveKeyOpts{Method: desc})
//
// [ScopedKeyer] prefixes every key, which keeps tenants of a shared backend
// apart.
//
// # Retries
//
// Network backends wrap transient failures with [Retryable];
// [RetryWithBackoff] retries only those.
package cache
