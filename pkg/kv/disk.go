package kv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Disk stores each key as a file under root. Writes go to a temp file that
// is renamed over the target, so a reader never sees a half-written value.
type Disk struct {
	root string
}

// NewDisk creates root (and parents) if needed. A relative root is resolved
// against the working directory.
func NewDisk(root string) (*Disk, error) {
	if !filepath.IsAbs(root) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("kv/disk: getwd: %w", err)
		}
		root = filepath.Join(cwd, root)
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("kv/disk: mkdir %s: %w", root, err)
	}
	return &Disk{root: root}, nil
}

func (d *Disk) path(key string) string {
	return filepath.Join(d.root, key)
}

func (d *Disk) Get(_ context.Context, key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(d.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv/disk: get %s: %w", key, err)
	}
	return data, nil
}

func (d *Disk) Set(_ context.Context, key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(d.root, "."+key+".*")
	if err != nil {
		return fmt.Errorf("kv/disk: create temp for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("kv/disk: write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("kv/disk: sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("kv/disk: close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), d.path(key)); err != nil {
		return fmt.Errorf("kv/disk: rename %s: %w", key, err)
	}
	return nil
}

func (d *Disk) Delete(_ context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	err := os.Remove(d.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("kv/disk: delete %s: %w", key, err)
	}
	return nil
}
