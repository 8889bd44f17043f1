package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/jonathan/resume-builder/internal/fetch"
)

// Metadata describes where a job description came from.
type Metadata struct {
	Source    string `json:"source"`             // file path or URL
	Platform  string `json:"platform,omitempty"` // job board, for URLs
	Timestamp string `json:"timestamp"`          // RFC3339
	Hash      string `json:"hash"`               // SHA256 of the cleaned text
	Chars     int    `json:"chars"`
}

// NewMetadata records a freshly ingested text.
func NewMetadata(content, source string) *Metadata {
	m := &Metadata{
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		Chars:     len([]rune(content)),
	}
	if p := fetch.DetectPlatform(source); p != fetch.PlatformUnknown {
		m.Platform = string(p)
	}
	return m
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
