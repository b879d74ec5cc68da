package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/lanchonete/config"
	"github.com/shashiranjanraj/lanchonete/pkg/logger"
	"github.com/shashiranjanraj/lanchonete/pkg/metrics"
)

// Open builds the Store selected by STORE_DRIVER. The result records
// Prometheus timings per operation and is sealed when STORE_ENCRYPT is set.
func Open(ctx context.Context) (Store, error) {
	driver := config.StoreDriver()

	store, err := openDriver(ctx, driver)
	if err != nil {
		return nil, err
	}

	if config.StoreEncrypt() {
		sec, err := NewSecure(store, config.AppKey())
		if err != nil {
			_ = Close(store)
			return nil, fmt.Errorf("kv: secure wrapper: %w", err)
		}
		store = sec
	}

	logger.Info("kv store ready", "driver", driver, "encrypted", config.StoreEncrypt())
	return Instrument(store, driver), nil
}

func openDriver(ctx context.Context, driver string) (Store, error) {
	switch driver {
	case "memory":
		return NewMemory(), nil
	case "disk":
		return NewDisk(config.StorePath())
	case "redis":
		return NewRedis(ctx, config.RedisAddr(), config.RedisPassword(), config.RedisPrefix())
	case "sql":
		return NewSQL(config.DatabaseDriver(), config.DatabaseDSN())
	case "mongo":
		return NewMongo(ctx, config.MongoURI(), config.MongoDatabase())
	case "s3":
		return NewS3(ctx, S3Options{
			Bucket:   config.S3Bucket(),
			Region:   config.S3Region(),
			Key:      config.S3Key(),
			Secret:   config.S3Secret(),
			Endpoint: config.S3Endpoint(),
			Prefix:   config.S3Prefix(),
		})
	default:
		return nil, fmt.Errorf("kv: unsupported STORE_DRIVER %q", driver)
	}
}

// instrumented times every call against the wrapped Store.
type instrumented struct {
	inner  Store
	driver string
}

// Instrument wraps s so each operation is observed in metrics.StoreOps.
func Instrument(s Store, driver string) Store {
	return &instrumented{inner: s, driver: driver}
}

func (i *instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	v, err := i.inner.Get(ctx, key)
	metrics.ObserveStore(i.driver, "get", resultLabel(err), start)
	return v, err
}

func (i *instrumented) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := i.inner.Set(ctx, key, value)
	metrics.ObserveStore(i.driver, "set", resultLabel(err), start)
	return err
}

func (i *instrumented) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := i.inner.Delete(ctx, key)
	metrics.ObserveStore(i.driver, "delete", resultLabel(err), start)
	return err
}

func (i *instrumented) Close() error { return Close(i.inner) }

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "miss"
	default:
		return "error"
	}
}
