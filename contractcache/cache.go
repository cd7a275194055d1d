// Package contractcache keeps rendered contracts in a key-value store so
// repeated downloads of an unchanged internship skip the overlay pass.
package contractcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json/v2"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/zeptools/gw-intern/contract"
	"github.com/zeptools/gw-intern/db/kvdb"
)

const DefaultTTL = 24 * time.Hour

// Cache is safe for concurrent use when its kvdb.Client is.
// A nil client disables caching: every call renders.
// Concurrent requests for the same key share one lookup and render
type Cache struct {
	kv     kvdb.Client
	prefix string
	ttl    time.Duration
	flight singleflight.Group
}

func New(kv kvdb.Client, prefix string, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{kv: kv, prefix: prefix, ttl: ttl}
}

// keyMaterial - everything that changes the rendered bytes. The layout is
// fixed per deployment and not part of it
type keyMaterial struct {
	Template    string         `json:"template"`
	EmailDomain string         `json:"email_domain"`
	Creator     string         `json:"creator"` // document metadata
	Input       contract.Input `json:"input"`
}

// Key of the rendered contract of in over tpl
func (c *Cache) Key(tpl *contract.Template, in contract.Input, opts contract.Options) (string, error) {
	if opts.EmailDomain == "" {
		opts.EmailDomain = contract.DefaultEmailDomain
	}
	data, err := json.Marshal(keyMaterial{
		Template:    tpl.Digest(),
		EmailDomain: opts.EmailDomain,
		Creator:     opts.Creator,
		Input:       in,
	})
	if err != nil {
		return "", fmt.Errorf("contractcache: key: %w", err)
	}
	sum := sha256.Sum256(data)
	return c.prefix + "contract:" + hex.EncodeToString(sum[:]), nil
}

// Document returns the PDF bytes of in, from the store when present.
// A hit restarts the entry's TTL.
// Store failures are logged and the contract is rendered instead.
// The returned slice may be shared with concurrent callers; do not modify it
func (c *Cache) Document(ctx context.Context, tpl *contract.Template, in contract.Input, opts contract.Options) ([]byte, error) {
	if c.kv == nil || tpl == nil {
		return render(tpl, in, opts)
	}
	key, err := c.Key(tpl, in, opts)
	if err != nil {
		log.Printf("[WARN][CACHE] %v", err)
		return render(tpl, in, opts)
	}
	v, err, _ := c.flight.Do(key, func() (any, error) {
		return c.lookupOrRender(ctx, key, tpl, in, opts)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *Cache) lookupOrRender(ctx context.Context, key string, tpl *contract.Template, in contract.Input, opts contract.Options) ([]byte, error) {
	val, found, err := c.kv.Get(ctx, key)
	switch {
	case err != nil:
		log.Printf("[WARN][CACHE] get %s: %v", key, err)
	case found:
		// sliding expiry: a contract in use stays cached
		if _, err = c.kv.Expire(ctx, key, c.ttl); err != nil {
			log.Printf("[WARN][CACHE] expire %s: %v", key, err)
		}
		return []byte(val), nil
	}
	out, err := render(tpl, in, opts)
	if err != nil {
		return nil, err
	}
	if err = c.kv.Set(ctx, key, out, c.ttl); err != nil {
		log.Printf("[WARN][CACHE] set %s: %v", key, err)
	}
	return out, nil
}

// Forget drops the cached contract of in, if any
func (c *Cache) Forget(ctx context.Context, tpl *contract.Template, in contract.Input, opts contract.Options) error {
	if c.kv == nil {
		return nil
	}
	key, err := c.Key(tpl, in, opts)
	if err != nil {
		return err
	}
	_, err = c.kv.Delete(ctx, key)
	return err
}

func render(tpl *contract.Template, in contract.Input, opts contract.Options) ([]byte, error) {
	doc, err := contract.Generate(tpl, in, opts)
	if err != nil {
		return nil, err
	}
	return doc.Bytes()
}
