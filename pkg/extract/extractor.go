package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// FromFile extracts plain text from an uploaded document. The extension of
// the original (display) name decides the format, since stored file names
// carry upload prefixes. Unsupported formats yield empty text, not an error:
// a document without extractable text is a valid, empty retrieval candidate.
func FromFile(path, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))

	var text string
	var err error

	switch ext {
	case ".pdf":
		text, err = fromPDF(path)
	case ".txt", ".md":
		var data []byte
		data, err = os.ReadFile(path)
		text = string(data)
	case ".docx", ".doc":
		text, err = fromDocx(path)
	default:
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", originalName, err)
	}

	return Normalize(text), nil
}

// Normalize cleans extracted text: unified line endings, collapsed blank-line
// runs, trimmed edges.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
