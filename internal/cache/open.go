package cache

import (
	"context"
	"fmt"
)

// Settings selects and configures a backend.
type Settings struct {
	Backend     string
	SQLitePath  string
	RedisURL    string
	RedisPrefix string
}

// OpenBackend builds the backend named in s.
func OpenBackend(ctx context.Context, s Settings) (Backend, error) {
	switch s.Backend {
	case "", BackendSQLite:
		return OpenSQLite(ctx, s.SQLitePath)
	case BackendRedis:
		return OpenRedis(ctx, s.RedisURL, s.RedisPrefix)
	case BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", s.Backend)
	}
}
