// Package config loads toolalgo server settings.
//
// Settings are layered: built-in defaults, then an optional YAML file, then
// TOOLALGO_* environment variables. Command-line flags in cmd/toolalgo are
// applied last by the caller. Validate checks the merged result.
//
// Environment variables:
//
//	TOOLALGO_ADDR           listen address for the http transport
//	TOOLALGO_TRANSPORT      "stdio" or "http"
//	TOOLALGO_LOG_LEVEL      debug, info, warn or error
//	TOOLALGO_LOG_JSON       true for JSON log lines
//	TOOLALGO_RATE_LIMIT     requests per second accepted over HTTP (0 = unlimited)
//	TOOLALGO_RATE_BURST     burst size for the HTTP rate limiter
//	TOOLALGO_BATCH_WORKERS  worker pool size for tools/batch (0 = GOMAXPROCS)
//	TOOLALGO_GEOMETRY_URL   MCP endpoint serving pointat and srf4pt
package config
