package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		contentType string
		data        []byte
		want        string
	}{
		{
			name:        "plain utf-8",
			fileName:    "notes.md",
			contentType: "text/markdown",
			data:        []byte("Supply: 3.3V ± 5%"),
			want:        "Supply: 3.3V ± 5%",
		},
		{
			name:     "txt extension without content type",
			fileName: "PROCEDURE.TXT",
			data:     []byte("Step one"),
			want:     "Step one",
		},
		{
			name:        "utf-8 bom is dropped",
			fileName:    "bom.txt",
			contentType: "text/plain",
			data:        append([]byte{0xEF, 0xBB, 0xBF}, "rail A"...),
			want:        "rail A",
		},
		{
			name:        "utf-16 little endian",
			fileName:    "wide.txt",
			contentType: "text/plain",
			data:        []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00},
			want:        "hi",
		},
		{
			name:        "windows-1252 fallback",
			fileName:    "legacy.txt",
			contentType: "text/plain",
			data:        []byte("50\xb0C soak \x96 2h"),
			want:        "50°C soak – 2h",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Extract(tt.fileName, tt.contentType, strings.NewReader(string(tt.data)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Text)
			assert.False(t, doc.Placeholder)
			assert.Equal(t, int64(len(tt.data)), doc.Size)
			assert.Len(t, doc.Hash, 16)
		})
	}
}

func TestExtractBinaryUsesPlaceholder(t *testing.T) {
	doc, err := Extract("board.pdf", "application/pdf", strings.NewReader("%PDF-1.7"))
	require.NoError(t, err)

	assert.True(t, doc.Placeholder)
	assert.Equal(t, `[Document "board.pdf" was uploaded but full content extraction requires a multimodal model. Please describe the document content in your workflow description.]`, doc.Text)
}

func TestExtractHTML(t *testing.T) {
	page := "<html><body>\n<h1>Burn-in</h1>\n<p>Vcc &amp; GND</p>\n<script>alert(1)</script>\n</body></html>"

	doc, err := Extract("page.html", "text/html; charset=utf-8", strings.NewReader(page))
	require.NoError(t, err)

	assert.Equal(t, "Burn-in\nVcc & GND", doc.Text)
}

func TestExtractHashIsStable(t *testing.T) {
	a, err := Extract("a.txt", "text/plain", strings.NewReader("same"))
	require.NoError(t, err)
	b, err := Extract("b.txt", "text/plain", strings.NewReader("same"))
	require.NoError(t, err)
	c, err := Extract("c.txt", "text/plain", strings.NewReader("different"))
	require.NoError(t, err)

	assert.Equal(t, a.Hash, b.Hash)
	assert.NotEqual(t, a.Hash, c.Hash)
}

func TestIsText(t *testing.T) {
	assert.True(t, IsText("x.bin", "text/csv"))
	assert.True(t, IsText("x.txt", "application/octet-stream"))
	assert.False(t, IsText("x.png", "image/png"))
	assert.False(t, IsText("x", ""))
}

func TestFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "procedure.txt")
	require.NoError(t, os.WriteFile(path, []byte("Apply 12V"), 0644))

	doc, err := FromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "procedure.txt", doc.Name)
	assert.Equal(t, "Apply 12V", doc.Text)

	_, err = FromPath(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
