package staging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/adapters/storage/staging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStagingStore_Move(t *testing.T) {
	// Arrange
	base := t.TempDir()
	store, err := staging.NewStagingStore(base)
	require.NoError(t, err)

	sourcePath := filepath.Join(base, "tus-1.bin")
	require.NoError(t, os.WriteFile(sourcePath, []byte("payload"), 0o644))

	targetPath := filepath.Join(base, "archive", "s", "u", "sub-1", "reads.fastq.gz")

	// Act
	err = store.Move(sourcePath, targetPath)

	// Assert
	require.NoError(t, err)
	assert.False(t, store.Exists(sourcePath))
	assert.True(t, store.Exists(targetPath))

	content, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), content)
}

func TestStagingStore_Move_MissingSource(t *testing.T) {
	// Arrange
	base := t.TempDir()
	store, err := staging.NewStagingStore(base)
	require.NoError(t, err)

	// Act
	err = store.Move(filepath.Join(base, "missing.bin"), filepath.Join(base, "archive", "out.bin"))

	// Assert
	assert.Error(t, err)
}

func TestStagingStore_Remove(t *testing.T) {
	// Arrange
	base := t.TempDir()
	store, err := staging.NewStagingStore(base)
	require.NoError(t, err)

	path := filepath.Join(base, "tus-1.info")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	// Act & Assert
	assert.NoError(t, store.Remove(path))
	assert.False(t, store.Exists(path))

	// Removing again is not an error.
	assert.NoError(t, store.Remove(path))
}

func TestStagingStore_Size(t *testing.T) {
	// Arrange
	base := t.TempDir()
	store, err := staging.NewStagingStore(base)
	require.NoError(t, err)

	path := filepath.Join(base, "tus-1.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 4096), 0o644))

	// Act
	size, err := store.Size(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(4096), size)

	_, err = store.Size(filepath.Join(base, "missing.bin"))
	assert.Error(t, err)
}

func TestStagingStore_UsableSpace(t *testing.T) {
	// Arrange
	store, err := staging.NewStagingStore(t.TempDir())
	require.NoError(t, err)

	// Act
	usable, err := store.UsableSpace()

	// Assert
	require.NoError(t, err)
	assert.Greater(t, usable, uint64(0))
}

func TestStagingStore_EnsureDir(t *testing.T) {
	// Arrange
	base := t.TempDir()
	store, err := staging.NewStagingStore(base)
	require.NoError(t, err)

	dir := filepath.Join(base, "uploads", "usr-ana")

	// Act & Assert
	require.NoError(t, store.EnsureDir(dir))
	assert.True(t, store.Exists(dir))

	// Idempotent.
	require.NoError(t, store.EnsureDir(dir))
}
