package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

type LocalBlob struct {
	dir string
}

func NewLocalBlob(dir string) (*LocalBlob, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &LocalBlob{dir: dir}, nil
}

// path roots key under dir; Clean on a rooted path drops any "..".
func (b *LocalBlob) path(key string) string {
	return filepath.Join(b.dir, filepath.Clean("/"+key))
}

func (b *LocalBlob) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	p := b.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return "file://" + p, nil
}

