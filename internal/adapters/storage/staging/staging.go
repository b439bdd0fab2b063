package staging

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/port"
)

type stagingStore struct {
	basePath string
}

// NewStagingStore creates the filesystem adapter rooted at the staging
// directory shared with the upload daemon
func NewStagingStore(basePath string) (port.StagingStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("preparing staging directory %s: %w", basePath, err)
	}
	return &stagingStore{basePath: basePath}, nil
}

// UsableSpace reports the bytes available to unprivileged writers on the
// filesystem backing the staging directory
func (s *stagingStore) UsableSpace() (uint64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(s.basePath, &stat); err != nil {
		return 0, fmt.Errorf("statfs %s: %w", s.basePath, err)
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}

// Move relocates an artifact with a rename, a single atomic operation on the
// staging filesystem. Intermediate target directories are created as needed.
func (s *stagingStore) Move(sourcePath, targetPath string) error {
	if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
		return fmt.Errorf("preparing target directory: %w", err)
	}
	if err := os.Rename(sourcePath, targetPath); err != nil {
		return fmt.Errorf("moving %s to %s: %w", sourcePath, targetPath, err)
	}
	return nil
}

// Remove deletes an artifact; a missing artifact is not an error
func (s *stagingStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

func (s *stagingStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (s *stagingStore) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.Size(), nil
}

func (s *stagingStore) EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}
