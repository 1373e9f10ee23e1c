package files

import (
	"mime"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const genericMimetype = "application/octet-stream"

// sniffLen matches the mimetype library's default read limit.
const sniffLen = 3072

var extensionMimetypes = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// resolveMimetype prefers the client-declared type. Missing or generic
// declarations fall back to content sniffing, then to the file extension.
func resolveMimetype(declared, fileName string, head []byte) string {
	if mt := normalizeMimetype(declared); mt != "" && mt != genericMimetype {
		return declared
	}
	if len(head) > 0 {
		detected := mimetype.Detect(head)
		if !detected.Is(genericMimetype) && !detected.Is("text/plain") {
			return detected.String()
		}
	}
	if mt, ok := extensionMimetypes[path.Ext(fileName)]; ok {
		return mt
	}
	return genericMimetype
}

func normalizeMimetype(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return ""
	}
	return mt
}
