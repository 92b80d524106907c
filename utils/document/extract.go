// Package document turns an uploaded file into text that can be folded into
// a generation prompt.
package document

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/kris-hansen/hwflow/utils/config"
	"github.com/kris-hansen/hwflow/utils/fileutil"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// placeholderFormat is used for documents whose content is not extracted
const placeholderFormat = `[Document "%s" was uploaded but full content extraction requires a multimodal model. Please describe the document content in your workflow description.]`

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}

	htmlPolicy = bluemonday.StrictPolicy()
)

// Extracted is the result of reading one document
type Extracted struct {
	Name        string
	ContentType string
	Size        int64
	// Text is the decoded content, or a placeholder for binary documents
	Text string
	// Hash is the xxhash64 of the raw bytes, hex encoded
	Hash string
	// Placeholder is set when Text does not come from the document itself
	Placeholder bool
}

// IsText reports whether a document is read as text: the content type
// mentions "text" or the name ends in .txt
func IsText(name, contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "text") ||
		strings.HasSuffix(strings.ToLower(name), ".txt")
}

// Placeholder returns the text used in place of a non-text document
func Placeholder(name string) string {
	return fmt.Sprintf(placeholderFormat, name)
}

// Extract reads r completely and returns its text
func Extract(name, contentType string, r io.Reader) (*Extracted, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", name, err)
	}

	doc := &Extracted{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Hash:        fmt.Sprintf("%016x", xxhash.Sum64(data)),
	}

	if !IsText(name, contentType) {
		doc.Text = Placeholder(name)
		doc.Placeholder = true
		config.VerboseLog("Document %s (%s) is not text, using placeholder", name, contentType)
		return doc, nil
	}

	text, err := decodeText(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", name, err)
	}
	if isHTML(name, contentType) {
		text = stripHTML(text)
	}
	doc.Text = text

	config.DebugLog("Extracted document %s: %d bytes, %d chars, hash %s", name, doc.Size, utf8.RuneCountInString(text), doc.Hash)
	return doc, nil
}

// FromFileHeader extracts a multipart upload
func FromFileHeader(fh *multipart.FileHeader) (*Extracted, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	return Extract(fh.Filename, fh.Header.Get("Content-Type"), f)
}

// FromPath extracts a local file, guessing the content type from its extension
func FromPath(path string) (*Extracted, error) {
	expanded, err := fileutil.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand path %s: %w", path, err)
	}

	f, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(expanded))
	return Extract(filepath.Base(expanded), contentType, f)
}

// decodeText honours a UTF-8 or UTF-16 byte order mark, accepts valid UTF-8
// as is, and reads anything else as Windows-1252.
func decodeText(data []byte) (string, error) {
	if bytes.HasPrefix(data, bomUTF8) || bytes.HasPrefix(data, bomUTF16BE) || bytes.HasPrefix(data, bomUTF16LE) {
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func isHTML(name, contentType string) bool {
	if strings.Contains(strings.ToLower(contentType), "html") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".html" || ext == ".htm"
}

// stripHTML removes markup and collapses the blank lines it leaves behind
func stripHTML(text string) string {
	stripped := html.UnescapeString(htmlPolicy.Sanitize(text))

	var lines []string
	for _, line := range strings.Split(stripped, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n")
}
