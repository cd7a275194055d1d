package sqldb

import (
	"context"
	"errors"
)

// ErrNoRows is returned by Row.Scan when the query selected nothing,
// whatever the driver
var ErrNoRows = errors.New("sqldb: no rows in result set")

type Client interface {
	Init() error
	Close() error
	Handle // query methods are promoted from the client's handle
	GetHandle() Handle
	GetConf() *Conf
	GetDSN() string
	Ping(ctx context.Context) error
	PlaceholderPrefix() byte
}

// Handle runs read queries. Implementations are safe for concurrent use
type Handle interface {
	QueryRows(ctx context.Context, query string, args ...any) (Rows, error) // Eager. Fail upfront on statement execution
	QueryRow(ctx context.Context, query string, args ...any) Row            // Lazy. only fails at Scan()
}
