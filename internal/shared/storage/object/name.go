package object

import (
	"errors"
	"fmt"
	"time"

	"filevault/internal/shared/util"
)

// ErrNameTooLong means the original name leaves no room for the timestamp
// prefix within util.MaxFileNameBytes.
var ErrNameTooLong = errors.New("file name too long")

// MaxOriginalNameBytes leaves room for the "<epoch-millis>_" prefix within a
// single path element.
const MaxOriginalNameBytes = util.MaxFileNameBytes - len("0000000000000_")

// GeneratedName returns the storage name for an upload received at now:
// "<epoch-millis>_<original name>".
func GeneratedName(now time.Time, originalName string) (string, error) {
	sanitized, err := util.SanitizeFileName(originalName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	name := fmt.Sprintf("%d_%s", now.UnixMilli(), sanitized)
	if len(name) > util.MaxFileNameBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrNameTooLong, len(sanitized))
	}
	return name, nil
}
