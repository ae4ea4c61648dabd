// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recognize

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/phuslu/log"
)

// Cache stores recognition results by key.
type Cache interface {
	Get(ctx context.Context, key string) (text string, ok bool, err error)
	Put(ctx context.Context, key, backend, text string) error
}

// Cached wraps a Recognizer with a result cache. Only successful results
// are stored; cache failures are logged and bypassed.
type Cached struct {
	Recognizer
	cache   Cache
	variant string
	logger  *log.Logger
}

// WithCache returns r backed by c. variant distinguishes settings that
// change the output for the same image (model, language).
func WithCache(r Recognizer, c Cache, variant string, logger *log.Logger) *Cached {
	return &Cached{Recognizer: r, cache: c, variant: variant, logger: logger}
}

func (c *Cached) Recognize(ctx context.Context, image []byte) (string, error) {
	key := cacheKey(c.Name(), c.variant, image)

	text, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn().Err(err).Msg("recognition cache read failed")
	} else if ok {
		c.logger.Debug().Str("key", key[:12]).Msg("recognition cache hit")
		return text, nil
	}

	text, err = c.Recognizer.Recognize(ctx, image)
	if err != nil {
		return "", err
	}

	if err := c.cache.Put(ctx, key, c.Name(), text); err != nil {
		c.logger.Warn().Err(err).Msg("recognition cache write failed")
	}
	return text, nil
}

// cacheKey is the hex SHA-256 of backend, variant and image bytes.
func cacheKey(backend, variant string, image []byte) string {
	h := sha256.New()
	h.Write([]byte(backend))
	h.Write([]byte{0})
	h.Write([]byte(variant))
	h.Write([]byte{0})
	h.Write(image)
	return hex.EncodeToString(h.Sum(nil))
}
