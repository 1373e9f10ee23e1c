package util

import (
	"errors"
	"path"
	"strings"
	"unicode"
)

// ErrInvalidFileName is returned for names that cannot be stored safely.
var ErrInvalidFileName = errors.New("invalid file name")

// MaxFileNameBytes matches the common filesystem limit for one path element.
const MaxFileNameBytes = 255

// SanitizeFileName reduces a client-supplied name to a single safe path
// element. Directory parts are dropped, so "../x.pdf" becomes "x.pdf";
// dots inside a name ("Q1..report.pdf") are ordinary characters.
func SanitizeFileName(name string) (string, error) {
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return "", ErrInvalidFileName
	}

	base := strings.TrimSpace(path.Base(strings.ReplaceAll(name, `\`, "/")))
	switch {
	case base == "", base == ".", base == "..", base == "/":
		return "", ErrInvalidFileName
	case len(base) > MaxFileNameBytes:
		return "", ErrInvalidFileName
	}
	return base, nil
}
