package hook

import (
	"path/filepath"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
)

// The tusd server stages every upload as a pair of flat files named after the
// upload id: the payload and its companion metadata file.
func (s *hookService) stagedBinPath(tusID string) string {
	return filepath.Join(s.cfg.SourceBasePath, tusID+".bin")
}

func (s *hookService) stagedInfoPath(tusID string) string {
	return filepath.Join(s.cfg.SourceBasePath, tusID+".info")
}

// archivePath places the file under the sharded archive subtree. It stays on
// the staging filesystem so relocation is a single rename.
func (s *hookService) archivePath(submissionID, filename string) string {
	return filepath.Join(s.cfg.SourceBasePath, s.cfg.TargetBasePath, domain.TargetFolder(submissionID), filename)
}
