package observability

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/jonathan/resume-builder/internal/scoring"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer renders score reports for the terminal.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// ScoreRow is one line of a multi-resume score table.
type ScoreRow struct {
	Source string
	Score  types.ResumeScore
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResumeScore outputs the section breakdown and feedback of one resume.
func (p *Printer) PrintResumeScore(source string, score types.ResumeScore) error {
	table := tablewriter.NewWriter(p.out)
	table.Header("Section", "Score", "Max")
	rows := [][]string{
		{"Education", strconv.Itoa(score.Education), strconv.Itoa(scoring.MaxEducationScore)},
		{"Experience", strconv.Itoa(score.Experience), strconv.Itoa(scoring.MaxExperienceScore)},
		{"Skills", strconv.Itoa(score.Skills), strconv.Itoa(scoring.MaxSkillsScore)},
		{"Total", strconv.Itoa(score.Total), "100"},
	}
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("failed to build score table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render score table: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(score.Feedback.Overall)
	if len(score.Feedback.Improvements) > 0 {
		sb.WriteString("\n\nImprovements:")
		for _, item := range score.Feedback.Improvements {
			sb.WriteString("\n  • " + item)
		}
	}
	title := "RESUME SCORE"
	if source != "" {
		title += ": " + source
	}
	p.printBox(title, sb.String())
	return nil
}

// PrintScoreTable outputs one row per scored resume.
func (p *Printer) PrintScoreTable(rows []ScoreRow) error {
	table := tablewriter.NewWriter(p.out)
	table.Header("Resume", "Education", "Experience", "Skills", "Total")
	for _, row := range rows {
		err := table.Append(
			row.Source,
			strconv.Itoa(row.Score.Education),
			strconv.Itoa(row.Score.Experience),
			strconv.Itoa(row.Score.Skills),
			strconv.Itoa(row.Score.Total),
		)
		if err != nil {
			return fmt.Errorf("failed to append row for %s: %w", row.Source, err)
		}
	}
	return table.Render()
}

// PrintATSScore outputs the keyword report of an ATS analysis.
func (p *Printer) PrintATSScore(score types.ATSScore) error {
	summary := tablewriter.NewWriter(p.out)
	summary.Header("Section", "Match %")
	if err := summary.Bulk([][]string{
		{"Education", formatPercent(score.Education)},
		{"Experience", formatPercent(score.Experience)},
		{"Skills", formatPercent(score.Skills)},
		{"Overall", formatPercent(score.Overall)},
	}); err != nil {
		return fmt.Errorf("failed to build ATS table: %w", err)
	}
	if err := summary.Render(); err != nil {
		return fmt.Errorf("failed to render ATS table: %w", err)
	}

	if len(score.KeywordMatches) > 0 {
		matches := tablewriter.NewWriter(p.out)
		matches.Header("Keyword", "Relevance")
		for _, m := range score.KeywordMatches {
			if err := matches.Append(m.Keyword, strconv.FormatFloat(m.Relevance, 'f', 4, 64)); err != nil {
				return fmt.Errorf("failed to append keyword %s: %w", m.Keyword, err)
			}
		}
		if err := matches.Render(); err != nil {
			return fmt.Errorf("failed to render keyword table: %w", err)
		}
	}

	var sb strings.Builder
	if n := len(score.MissingKeywords); n > 0 {
		shown := min(n, maxItemsToShow)
		sb.WriteString("Missing: " + strings.Join(score.MissingKeywords[:shown], ", "))
		if n > shown {
			sb.WriteString(fmt.Sprintf(" ... and %d more", n-shown))
		}
		sb.WriteString("\n\n")
	}
	for _, s := range score.Suggestions {
		sb.WriteString("• " + s + "\n")
	}
	p.printBox("ATS SUGGESTIONS", strings.TrimRight(sb.String(), "\n"))
	return nil
}

// PrintTemplates outputs the template catalog.
func (p *Printer) PrintTemplates(templates []types.Template) error {
	table := tablewriter.NewWriter(p.out)
	table.Header("ID", "Name", "Category", "Description")
	for _, t := range templates {
		if err := table.Append(t.ID, t.Name, string(t.Category), t.Description); err != nil {
			return fmt.Errorf("failed to append template %s: %w", t.ID, err)
		}
	}
	return table.Render()
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
