package ingestion

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/jonathan/resume-builder/internal/fetch"
)

// Supported content types.
const (
	TypePlainText = "text/plain"
	TypeMarkdown  = "text/markdown"
	TypeHTML      = "text/html"
	TypePDF       = "application/pdf"
	TypeDOCX      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	TypeJSON      = "application/json"
)

var extensionTypes = map[string]string{
	".txt":  TypePlainText,
	".text": TypePlainText,
	".md":   TypeMarkdown,
	".html": TypeHTML,
	".htm":  TypeHTML,
	".pdf":  TypePDF,
	".docx": TypeDOCX,
	".json": TypeJSON,
}

// DetectContentType returns the media type of a document, preferring the file
// extension and falling back to content sniffing.
func DetectContentType(path string, data []byte) string {
	if t, ok := extensionTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return t
	}
	sniffed, _, err := mime.ParseMediaType(http.DetectContentType(data))
	if err != nil {
		return "application/octet-stream"
	}
	return sniffed
}

// ExtractResumeText returns the cleaned plain text of a resume document.
// contentType may carry parameters such as "; charset=utf-8".
func ExtractResumeText(contentType string, data []byte) (string, error) {
	mediaType := contentType
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}

	var (
		text string
		err  error
	)
	switch mediaType {
	case TypePlainText, TypeMarkdown:
		text = string(data)
	case TypeHTML:
		text, err = fetch.ExtractMainText(string(data), []string{"main", "article", ".resume", "#resume"})
	case TypePDF:
		text, err = extractPDFText(data)
	case TypeDOCX:
		text, err = extractDocxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, contentType)
	}
	if err != nil {
		return "", err
	}

	text = CleanText(text)
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return docxPlainText(doc.Editable().GetContent()), nil
}

// docxPlainText reduces WordprocessingML to text: paragraphs become lines and
// tags are dropped.
func docxPlainText(xml string) string {
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	xml = strings.ReplaceAll(xml, "<w:br/>", "\n")

	var sb strings.Builder
	inTag := false
	for _, r := range xml {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return xmlUnescaper.Replace(sb.String())
}

var xmlUnescaper = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")
