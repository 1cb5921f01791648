package constants

import "strings"

// AllowedExtensions holds the upload file extensions eligible for OCR ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsSupportedUpload reports whether an object key's extension is eligible for OCR.
func IsSupportedUpload(key string) bool {
	i := strings.LastIndexByte(key, '.')
	if i < 0 {
		return false
	}
	_, ok := AllowedExtensions[NormalizeExt(key[i:])]
	return ok
}

// MaxTextLength caps the raw text handed to the extraction backend.
// Literal text above the cap is rejected; URL-sourced text is truncated.
const MaxTextLength = 50000
