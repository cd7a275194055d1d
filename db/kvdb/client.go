package kvdb

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type Client interface {
	Init() error
	Close() error
	GetConf() *Conf

	//---- Key Ops ----

	Delete(ctx context.Context, keys ...string) (int64, error)
	// Expire sets/updates expiration for a key
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) // found & updated, err

	//---- Single-value Ops ----

	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error) // val, found, err
}

var ErrNotSupported = errors.New("kvdb: operation not supported")

// ClientFactory constructs an uninitialized Client from Conf
type ClientFactory func(conf *Conf) (Client, error)

var registry = map[string]ClientFactory{}

func RegisterFactory(kvType string, factory ClientFactory) {
	registry[kvType] = factory
}

func New(conf *Conf) (Client, error) {
	factory, ok := registry[conf.Type]
	if !ok {
		return nil, fmt.Errorf("%w: key-value store type %q", ErrNotSupported, conf.Type)
	}
	return factory(conf)
}
