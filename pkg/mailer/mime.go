package mailer

import (
	"mime"
	"path/filepath"
	"strings"
)

// MIMEOctetStream is used when the content type cannot be guessed.
const MIMEOctetStream = "application/octet-stream"

// extensionTypes covers the attachment types a campaign typically carries,
// independent of the host's mime.types tables.
var extensionTypes = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain; charset=utf-8",
}

// DetectContentType guesses the MIME type of a file from its extension.
// Unknown extensions fall back to application/octet-stream.
func DetectContentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return MIMEOctetStream
	}
	if ct, ok := extensionTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return MIMEOctetStream
}
