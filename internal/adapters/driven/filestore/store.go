package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/prrelink/internal/core/domain"
	"github.com/custodia-labs/prrelink/internal/core/ports/driven"
	"github.com/custodia-labs/prrelink/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ProjectFiles = (*Store)(nil)

// BackupSuffix is appended to the target name for the pre-write copy.
const BackupSuffix = ".bak"

// Store is the local filesystem implementation of driven.ProjectFiles.
type Store struct {
	retry  RetryConfig
	backup bool
}

// NewStore creates a file store. When backup is true an existing target is
// copied to <target>.bak before it is replaced.
func NewStore(backup bool) *Store {
	return &Store{
		retry:  DefaultRetryConfig(),
		backup: backup,
	}
}

// SetRetryConfig overrides the retry policy.
func (s *Store) SetRetryConfig(cfg RetryConfig) {
	s.retry = cfg
}

// Read returns the contents of the file at path.
func (s *Store) Read(ctx context.Context, path string) ([]byte, error) {
	var data []byte
	err := withRetry(ctx, s.retry, "read", path, func() error {
		var err error
		data, err = os.ReadFile(path)
		return err
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("project file %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w: %w", path, domain.ErrIO, err)
	}
	return data, nil
}

// Write atomically replaces the file at path with data. Missing parent
// directories are created.
func (s *Store) Write(ctx context.Context, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w: %w", dir, domain.ErrIO, err)
	}

	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
		if s.backup {
			if err := s.copyBackup(ctx, path, mode); err != nil {
				return err
			}
		}
	}

	err := withRetry(ctx, s.retry, "write", path, func() error {
		return writeAtomic(path, data, mode)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w: %w", path, domain.ErrIO, err)
	}
	return nil
}

func (s *Store) copyBackup(ctx context.Context, path string, mode fs.FileMode) error {
	backupPath := path + BackupSuffix
	err := withRetry(ctx, s.retry, "backup", path, func() error {
		return copyFile(path, backupPath, mode)
	})
	if err != nil {
		return fmt.Errorf("backup %s: %w: %w", path, domain.ErrIO, err)
	}
	logger.Debug("Backed up %s to %s", path, backupPath)
	return nil
}

// writeAtomic writes data to a temp file beside path and renames it into place.
func writeAtomic(path string, data []byte, mode fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, mode); err != nil {
		return err
	}
	err = os.Rename(tmpName, path)
	return err
}

func copyFile(src, dst string, mode fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
