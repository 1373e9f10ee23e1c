package files

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultMaxUploadBytes is the largest accepted file payload.
const DefaultMaxUploadBytes int64 = 1_000_000

// AllowedFormatsMessage is returned for any file whose name is outside the allow-list.
const AllowedFormatsMessage = "only upload files with jpg, jpeg, png, pdf, doc, docx, xlsx, xls format."

// Case-sensitive on purpose: "REPORT.PDF" is rejected.
var allowedNamePattern = regexp.MustCompile(`\.(jpeg|jpg|png|pdf|doc|docx|xlsx|xls)$`)

// AllowedFileName reports whether name ends in one of the permitted extensions.
func AllowedFileName(name string) bool {
	return allowedNamePattern.MatchString(name)
}

func validateUpload(in UploadInput, maxBytes int64) error {
	if strings.TrimSpace(in.FileName) == "" {
		return validationError("file is required")
	}
	if !AllowedFileName(in.FileName) {
		return validationError(AllowedFormatsMessage)
	}
	if in.SizeBytes > maxBytes {
		return sizeError(maxBytes)
	}
	if strings.TrimSpace(in.Title) == "" {
		return validationError("title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return validationError("description is required")
	}
	return nil
}

func sizeError(maxBytes int64) error {
	return validationError(fmt.Sprintf("file too large: maximum size is %d bytes", maxBytes))
}

// bodySizeError is reported when the whole multipart body overruns its cap,
// which can be the file or the text fields next to it.
func bodySizeError(maxFileBytes, maxBodyBytes int64) error {
	return validationError(fmt.Sprintf(
		"request body too large: the file may be at most %d bytes and the whole form at most %d bytes",
		maxFileBytes, maxBodyBytes))
}
