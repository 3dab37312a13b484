package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aretw0/cyoa/pkg/adapters/file"
	"github.com/aretw0/cyoa/pkg/adapters/memory"
	"github.com/aretw0/cyoa/pkg/adapters/redis"
	"github.com/aretw0/cyoa/pkg/persistence/middleware"
	"github.com/aretw0/cyoa/pkg/ports"
)

// OpenStore builds the run archive selected by cfg.Store, wrapped with the
// masking and encryption middleware the configuration asks for.
// The closer must be called once the store is no longer used.
func OpenStore(ctx context.Context, cfg Config) (ports.RunStore, io.Closer, error) {
	mws, err := storeMiddleware(cfg)
	if err != nil {
		return nil, nil, err
	}
	store, closer, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return middleware.Chain(store, mws...), closer, nil
}

func storeMiddleware(cfg Config) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if len(cfg.MaskedResults) > 0 {
		pii, err := middleware.NewPIIMiddleware(cfg.MaskedResults)
		if err != nil {
			return nil, err
		}
		mws = append(mws, pii)
	}
	if cfg.EncryptionKey != "" {
		enc := middleware.EncryptionConfig{}
		key, err := decodeKey(cfg.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("CYOA_ENCRYPTION_KEY: %w", err)
		}
		enc.ActiveKey = key
		for i, raw := range cfg.FallbackKeys {
			key, err := decodeKey(raw)
			if err != nil {
				return nil, fmt.Errorf("CYOA_ENCRYPTION_FALLBACK_KEYS[%d]: %w", i, err)
			}
			enc.FallbackKeys = append(enc.FallbackKeys, key)
		}
		mw, err := middleware.NewEncryptionMiddleware(enc)
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}
	return mws, nil
}

func decodeKey(raw string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("decode base64 key: %w", err)
	}
	return key, nil
}

func openBackend(ctx context.Context, cfg Config) (ports.RunStore, io.Closer, error) {
	switch cfg.Store {
	case StoreMemory:
		return memory.NewStore(), nopCloser{}, nil
	case StoreRedis:
		var opts []redis.Option
		if cfg.RedisTTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.RedisTTL))
		}
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, opts...)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return store, store, nil
	case StoreFile, "":
		return file.New(cfg.RunsDir), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
