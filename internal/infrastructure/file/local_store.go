package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	domain "github.com/mohammadpnp/product-import/internal/domain/product"
)

// LocalStore parks uploaded payloads on disk until their job runs. Keys are
// file names relative to BaseDir.
type LocalStore struct {
	BaseDir string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	if baseDir == "" {
		baseDir = "."
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", baseDir, err)
	}
	return &LocalStore{BaseDir: baseDir}, nil
}

func (s *LocalStore) Save(ctx context.Context, jobID string, data []byte) (string, error) {
	_ = ctx

	key := jobID + ".csv"
	path, err := s.resolve(key)
	if err != nil {
		return "", err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write payload %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("finalize payload %s: %w", key, err)
	}

	return key, nil
}

func (s *LocalStore) Load(ctx context.Context, key string) ([]byte, error) {
	_ = ctx

	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPayloadNotFound, key)
		}
		return nil, fmt.Errorf("read payload %s: %w", key, err)
	}
	return data, nil
}

func (s *LocalStore) Remove(ctx context.Context, key string) error {
	_ = ctx

	path, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrPayloadNotFound, key)
		}
		return fmt.Errorf("remove payload %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) resolve(key string) (string, error) {
	if key == "" || filepath.Base(key) != key || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid payload key %q", key)
	}
	return filepath.Join(s.BaseDir, key), nil
}
