// Package attachments converts between files on disk and the base64 document
// payloads kept by the project store.
//
// The store treats Document.Content as an opaque string; this package is the
// only place that knows it is standard base64. Encode and Decode are exact
// inverses, so a file attached and then exported is byte-for-byte identical.
package attachments

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/projtrack/internal/models"
)

// sniffLen is how much of a file http.DetectContentType looks at.
const sniffLen = 512

// Encode returns the payload representation of raw.
func Encode(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}

// Decode reverses Encode.
func Decode(content string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, fmt.Errorf("decode attachment: %w", err)
	}
	return b, nil
}

// DetectType resolves a MIME type from the file extension and falls back to
// sniffing the content.
func DetectType(name string, head []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); t != "" {
		return t
	}
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	return http.DetectContentType(head)
}

// FromFile reads path into a draft ready for Store.AddDocument.
func FromFile(path string) (models.DocumentDraft, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.DocumentDraft{}, fmt.Errorf("read %s: %w", path, err)
	}

	name := filepath.Base(path)
	return models.DocumentDraft{
		Name:    name,
		Size:    int64(len(raw)),
		Type:    DetectType(name, raw),
		Content: Encode(raw),
	}, nil
}

// Export decodes doc into dir, creating dir if needed, and returns the path
// written. Only the base name of doc.Name is used.
func Export(dir string, doc models.Document) (string, error) {
	raw, err := Decode(doc.Content)
	if err != nil {
		return "", err
	}

	target, err := EnsureDir(dir)
	if err != nil {
		return "", err
	}

	name := filepath.Base(doc.Name)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		name = doc.ID
	}

	path := filepath.Join(target, name)
	if err := os.WriteFile(path, raw, 0o640); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// FormatSize renders a byte count as B, KB or MB with one decimal.
func FormatSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}

// Kind groups MIME types for display.
type Kind string

const (
	KindImage    Kind = "image"
	KindDocument Kind = "document"
	KindFile     Kind = "file"
)

func KindOf(mimeType string) Kind {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return KindImage
	case strings.Contains(mimeType, "pdf"),
		strings.Contains(mimeType, "document"),
		strings.Contains(mimeType, "text"):
		return KindDocument
	default:
		return KindFile
	}
}
