package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func TestPrintResumeScore(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	score := types.ResumeScore{
		Total:      61,
		Education:  26,
		Experience: 19,
		Skills:     16,
		Feedback: types.ScoreFeedback{
			Overall:      "Your resume is good but could use some improvements.",
			Improvements: []string{"Add GPA or grades to strengthen your education section"},
		},
	}

	require.NoError(t, p.PrintResumeScore("backend.json", score))
	output := buf.String()

	assert.Contains(t, output, "RESUME SCORE: backend.json")
	assert.Contains(t, output, "26")
	assert.Contains(t, output, "35")
	assert.Contains(t, output, "61")
	assert.Contains(t, output, "Improvements:")
	assert.Contains(t, output, "Add GPA or grades")
}

func TestPrintResumeScore_NoImprovements(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	require.NoError(t, p.PrintResumeScore("", types.ResumeScore{
		Total:    100,
		Feedback: types.ScoreFeedback{Overall: "Excellent!", Improvements: []string{}},
	}))
	output := buf.String()

	assert.Contains(t, output, "RESUME SCORE")
	assert.NotContains(t, output, "Improvements:")
}

func TestPrintScoreTable(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	require.NoError(t, p.PrintScoreTable([]ScoreRow{
		{Source: "a.json", Score: types.ResumeScore{Total: 16, Education: 16}},
		{Source: "b.json", Score: types.ResumeScore{Total: 42, Skills: 12}},
	}))
	output := buf.String()

	assert.Contains(t, output, "a.json")
	assert.Contains(t, output, "b.json")
	assert.Contains(t, output, "42")
}

func TestPrintATSScore(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	score := types.ATSScore{
		Overall:         57.5,
		Education:       50,
		Experience:      25,
		Skills:          50,
		MissingKeywords: []string{"kafka", "redis", "grpc", "terraform", "helm", "istio", "envoy"},
		Suggestions:     []string{"Consider adding these keywords to your resume: kafka, redis"},
		KeywordMatches:  []types.KeywordMatch{{Keyword: "golang", Relevance: 0.1234}},
	}

	require.NoError(t, p.PrintATSScore(score))
	output := buf.String()

	assert.Contains(t, output, "57.5")
	assert.Contains(t, output, "golang")
	assert.Contains(t, output, "0.1234")
	assert.Contains(t, output, "ATS SUGGESTIONS")
	assert.Contains(t, output, "... and 2 more")
	assert.NotContains(t, output, "envoy")
}

func TestPrintATSScore_NoMatches(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	require.NoError(t, p.PrintATSScore(types.ATSScore{
		MissingKeywords: []string{},
		Suggestions:     []string{"Your resume is well-matched"},
		KeywordMatches:  []types.KeywordMatch{},
	}))
	output := buf.String()

	assert.NotContains(t, strings.ToLower(output), "relevance")
	assert.NotContains(t, output, "Missing:")
}

func TestPrintTemplates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	require.NoError(t, p.PrintTemplates(types.Templates()))
	output := buf.String()

	assert.Contains(t, output, "professional-1")
	assert.Contains(t, output, "creative-2")
	assert.Contains(t, output, "Modern")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))
	output := buf.String()

	assert.Contains(t, output, "...")
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
}
