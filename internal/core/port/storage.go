package port

// StagingStore is an interface to interact with the staging filesystem
type StagingStore interface {
	// UsableSpace reports the bytes available for new uploads at the staging root.
	UsableSpace() (uint64, error)
	// Move relocates an artifact with an atomic rename, creating target
	// directories as needed. Source and target must share a filesystem.
	Move(sourcePath, targetPath string) error
	// Remove deletes an artifact; a missing artifact is not an error.
	Remove(path string) error
	Exists(path string) bool
	Size(path string) (int64, error)
	EnsureDir(path string) error
}
