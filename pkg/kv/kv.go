// Package kv is the key-value persistence layer behind the order log and
// the local account.
//
// Every driver stores opaque byte values under string keys and implements
// Store. Drivers:
//   - "memory": process-local map, used by tests
//   - "disk":   one file per key under STORE_PATH (default)
//   - "redis":  Redis strings under REDIS_PREFIX
//   - "sql":    a kv_entries table through GORM (sqlite, postgres, mysql, sqlserver)
//   - "mongo":  a kv collection in MONGO_DATABASE
//   - "s3":     objects under S3_PREFIX in S3_BUCKET
//
// Open builds the configured driver and, when STORE_ENCRYPT is on, wraps it
// with NewSecure so values are sealed at rest.
package kv

import (
	"context"
	"errors"
	"io"
	"regexp"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("kv: key not found")

// ErrInvalidKey is returned for keys outside [A-Za-z0-9_.:-].
var ErrInvalidKey = errors.New("kv: invalid key")

// Store is the storage abstraction injected into the order log and account.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value under key in a single write.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Close releases the resources held by s, if it holds any.
func Close(s Store) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

var keyRE = regexp.MustCompile(`^[A-Za-z0-9_.:-]{1,128}$`)

func validKey(key string) error {
	if !keyRE.MatchString(key) || key == "." || key == ".." {
		return ErrInvalidKey
	}
	return nil
}
