package fallback

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"school-cms/internal/infra/db"
)

// Drivers accepted by Open.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverNone     = "none"
)

// Options selects and configures a backend.
type Options struct {
	Driver        string
	Dir           string // file
	DSN           string // sqlite, postgres
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	RedisTTL      time.Duration
}

// Open builds the backend named by opts.Driver. The returned close function
// releases connections and is never nil.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (Backend, func() error, error) {
	noop := func() error { return nil }

	switch opts.Driver {
	case "", DriverMemory:
		return NewMemory(), noop, nil

	case DriverNone:
		return None{}, noop, nil

	case DriverFile:
		f, err := NewFile(opts.Dir)
		if err != nil {
			return nil, noop, err
		}
		return f, noop, nil

	case DriverSQLite, DriverPostgres:
		driver, dialect := db.DriverSQLite, DialectSQLite
		if opts.Driver == DriverPostgres {
			driver, dialect = db.DriverPostgres, DialectPostgres
		}
		conn, err := db.Open(ctx, driver, opts.DSN, db.DefaultConnectionConfig(), logger)
		if err != nil {
			return nil, noop, err
		}
		return NewSQL(conn, dialect), conn.Close, nil

	case DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("ping redis: %w", err)
		}
		return NewRedis(client, opts.RedisPrefix, opts.RedisTTL), client.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown cache driver %q", opts.Driver)
	}
}
