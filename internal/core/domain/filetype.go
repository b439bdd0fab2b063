package domain

import "strings"

// extensionToType is a whitelist of file extensions supported by the
// downstream content validator.
var extensionToType = map[string]string{
	"fastq.gz": "FASTQ",
	"fq.gz":    "FASTQ",
	"vcf":      "VCF",
	"vcf.gz":   "VCF",
}

// FileTypeByExtension returns the validator file type for a path, or ""
// when the extension is not supported for content validation.
func FileTypeByExtension(path string) string {
	for ext, fileType := range extensionToType {
		if strings.HasSuffix(path, "."+ext) {
			return fileType
		}
	}
	return ""
}
