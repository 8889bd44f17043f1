package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/fetch"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// MaxDocumentBytes caps the size of a resume or job description file.
const MaxDocumentBytes = 10 << 20

// ErrNoSource is returned when neither a path nor a URL is given.
var ErrNoSource = errors.New("no job description source given")

// LoadResumeText reads a resume file (txt, md, html, pdf, docx or a resume
// JSON document) and returns its plain text.
func LoadResumeText(path string) (string, error) {
	data, err := readFile(path)
	if err != nil {
		return "", err
	}

	contentType := DetectContentType(path, data)
	if contentType == TypeJSON {
		resume, err := decodeResume(path, data)
		if err != nil {
			return "", err
		}
		return resume.PlainText(), nil
	}

	text, err := ExtractResumeText(contentType, data)
	if err != nil {
		return "", &Error{Source: path, Message: "failed to extract text", Cause: err}
	}
	return text, nil
}

// LoadJobDescription reads a job description from a file or, when urlStr is
// set, fetches it. Exactly one of path and urlStr should be non-empty; the URL
// wins when both are.
func LoadJobDescription(ctx context.Context, path, urlStr string, opts *fetch.Options) (string, *Metadata, error) {
	switch {
	case urlStr != "":
		text, err := fetch.JobPostingText(ctx, urlStr, opts)
		if err != nil {
			return "", nil, &Error{Source: urlStr, Message: "failed to fetch job posting", Cause: err}
		}
		cleaned := CleanText(text)
		return cleaned, NewMetadata(cleaned, urlStr), nil

	case path != "":
		data, err := readFile(path)
		if err != nil {
			return "", nil, err
		}
		text, err := ExtractResumeText(DetectContentType(path, data), data)
		if err != nil {
			return "", nil, &Error{Source: path, Message: "failed to extract text", Cause: err}
		}
		return text, NewMetadata(text, path), nil

	default:
		return "", nil, ErrNoSource
	}
}

// LoadResumeDocument reads and validates a resume JSON document.
func LoadResumeDocument(path string) (*types.Resume, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return decodeResume(path, data)
}

// DecodeResume validates data against the resume schema and the struct rules.
func DecodeResume(data []byte) (*types.Resume, error) {
	return decodeResume("(request body)", data)
}

func decodeResume(source string, data []byte) (*types.Resume, error) {
	if err := schemas.ValidateBytes(schemas.ResumeSchema, data); err != nil {
		return nil, &Error{Source: source, Message: "resume does not match schema", Cause: err}
	}

	var resume types.Resume
	if err := json.Unmarshal(data, &resume); err != nil {
		return nil, &Error{Source: source, Message: "invalid resume JSON", Cause: err}
	}
	if err := resume.Validate(); err != nil {
		return nil, &Error{Source: source, Message: "invalid resume", Cause: err}
	}
	return &resume, nil
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{Source: path, Message: "file not found", Cause: err}
		}
		return nil, &Error{Source: path, Message: "failed to stat file", Cause: err}
	}
	if info.Size() > MaxDocumentBytes {
		return nil, &Error{Source: path, Message: fmt.Sprintf("file larger than %d bytes", MaxDocumentBytes)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Source: path, Message: "failed to read file", Cause: err}
	}
	return data, nil
}
