package ingestion

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml":            body.String(),
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		path string
		data []byte
		want string
	}{
		{"resume.PDF", nil, TypePDF},
		{"resume.docx", nil, TypeDOCX},
		{"job.md", nil, TypeMarkdown},
		{"resume.json", nil, TypeJSON},
		{"upload", []byte("%PDF-1.7\n..."), TypePDF},
		{"upload", []byte("<html><body>hi</body></html>"), TypeHTML},
		{"upload", []byte("plain words"), TypePlainText},
	}

	for _, tt := range tests {
		t.Run(tt.path+"/"+tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectContentType(tt.path, tt.data))
		})
	}
}

func TestExtractResumeText_PlainText(t *testing.T) {
	text, err := ExtractResumeText("text/plain; charset=utf-8", []byte("Go   developer\r\n\r\n\r\nKafka"))
	require.NoError(t, err)
	assert.Equal(t, "Go developer\n\nKafka", text)
}

func TestExtractResumeText_HTML(t *testing.T) {
	html := `<html><body><nav>Menu</nav><main><h1>Jane Doe</h1><p>Platform engineer</p></main></body></html>`
	text, err := ExtractResumeText(TypeHTML, []byte(html))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nPlatform engineer", text)
}

func TestExtractResumeText_DOCX(t *testing.T) {
	data := buildDocx(t, "Jane Doe", "Managed Kubernetes clusters &amp; CI pipelines")

	text, err := ExtractResumeText(TypeDOCX, data)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nManaged Kubernetes clusters & CI pipelines", text)
}

func TestExtractResumeText_Errors(t *testing.T) {
	_, err := ExtractResumeText("image/png", []byte{0x89, 'P', 'N', 'G'})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ExtractResumeText(TypePlainText, []byte("  \n\t "))
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = ExtractResumeText(TypePDF, []byte("not a pdf"))
	assert.Error(t, err)

	_, err = ExtractResumeText(TypeDOCX, []byte("not a zip"))
	assert.Error(t, err)
}

func TestDocxPlainText(t *testing.T) {
	xml := `<w:p><w:r><w:t>A</w:t><w:tab/><w:t>B</w:t></w:r></w:p><w:p><w:r><w:t>&lt;C&gt;</w:t></w:r></w:p>`
	assert.Equal(t, "A\tB\n<C>\n", docxPlainText(xml))
}
