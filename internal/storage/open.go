package storage

import (
	"context"
	"fmt"
)

// Backend driver names.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Options selects and parameterises a backend.
type Options struct {
	Driver    string
	Path      string // file and sqlite
	RedisURL  string
	KeyPrefix string // redis
}

// Open returns the Provider named by opts.Driver.
func Open(ctx context.Context, opts Options) (Provider, error) {
	switch opts.Driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile:
		return NewFile(opts.Path)
	case DriverSQLite:
		return OpenSQLite(opts.Path)
	case DriverRedis:
		return OpenRedis(ctx, opts.RedisURL, opts.KeyPrefix)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", opts.Driver)
	}
}
