// Package cache provides file-based caching with TTL expiration for fetched
// collections.
//
// A cached collection lets the dashboard start without waiting on the network
// when the same data was fetched recently. Key features:
//   - File-based storage in ~/.commentdash/cache/
//   - Configurable TTL (default 1 hour) via config file, environment variable, or CLI flag
//   - Expired entries are reported as misses and removed on the next write or cleanup
//   - SHA256-based keys derived from the endpoint URL
package cache
