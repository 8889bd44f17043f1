package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/fetch"
	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/schemas"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Match a resume against a job description",
	Long: "Extract keywords from a job description (file or URL), match them against a resume " +
		"(txt, md, html, pdf, docx or resume JSON) and print the ATS keyword report.",
	RunE: runAnalyze,
}

var (
	analyzeJobFile string
	analyzeJobURL  string
	analyzeResume  string
	analyzeFormat  string
	analyzeOut     string
	analyzeBrowser bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeJobFile, "job", "j", "", "Path to a job description file")
	analyzeCmd.Flags().StringVarP(&analyzeJobURL, "job-url", "u", "", "URL of a job posting to fetch")
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to the resume (required)")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", formatTable, "Output format: table or json")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Write JSON output to this file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeBrowser, "browser", false, "Render job boards that need JavaScript in headless Chrome")

	_ = analyzeCmd.MarkFlagRequired("resume")
	analyzeCmd.MarkFlagsMutuallyExclusive("job", "job-url")
	analyzeCmd.MarkFlagsOneRequired("job", "job-url")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if err := checkFormat(analyzeFormat); err != nil {
		return err
	}

	opts := fetch.DefaultOptions()
	opts.BrowserFallback = analyzeBrowser

	var jobText, resumeText string
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		text, _, err := ingestion.LoadJobDescription(ctx, analyzeJobFile, analyzeJobURL, opts)
		if err != nil {
			return fmt.Errorf("failed to load job description: %w", err)
		}
		jobText = text
		return nil
	})
	g.Go(func() error {
		text, err := ingestion.LoadResumeText(analyzeResume)
		if err != nil {
			return fmt.Errorf("failed to load resume: %w", err)
		}
		resumeText = text
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	score := ats.AnalyzeAgainstJobDescription(jobText, resumeText)

	if analyzeFormat == formatJSON || analyzeOut != "" {
		if err := validateReport(schemas.ATSScoreSchema, score); err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), analyzeOut, score)
	}
	return observability.NewPrinter(cmd.OutOrStdout()).PrintATSScore(score)
}
