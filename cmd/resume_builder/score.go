package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/scoring"
	"github.com/jonathan/resume-builder/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score resume documents for structural completeness",
	Long: "Score one or more resume JSON documents out of 100 (education 35, experience 35, skills 30) " +
		"and print the breakdown with improvement suggestions.",
	RunE: runScore,
}

var (
	scoreResumes []string
	scoreFormat  string
	scoreOut     string
)

func init() {
	scoreCmd.Flags().StringArrayVarP(&scoreResumes, "resume", "r", nil, "Path to a resume JSON document (repeatable)")
	scoreCmd.Flags().StringVarP(&scoreFormat, "format", "f", formatTable, "Output format: table or json")
	scoreCmd.Flags().StringVarP(&scoreOut, "out", "o", "", "Write JSON output to this file instead of stdout")

	_ = scoreCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	if err := checkFormat(scoreFormat); err != nil {
		return err
	}

	rows := make([]observability.ScoreRow, len(scoreResumes))
	g, _ := errgroup.WithContext(cmd.Context())
	for i, path := range scoreResumes {
		g.Go(func() error {
			resume, err := ingestion.LoadResumeDocument(path)
			if err != nil {
				return err
			}
			rows[i] = observability.ScoreRow{Source: path, Score: scoring.ScoreResume(resume)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}

	if scoreFormat == formatJSON || scoreOut != "" {
		for _, row := range rows {
			if err := validateReport(schemas.ResumeScoreSchema, row.Score); err != nil {
				return err
			}
		}
		return writeJSON(cmd.OutOrStdout(), scoreOut, scoreReports(rows))
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	if len(rows) > 1 {
		if err := printer.PrintScoreTable(rows); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := printer.PrintResumeScore(row.Source, row.Score); err != nil {
			return err
		}
	}
	return nil
}

type scoreReport struct {
	Source string            `json:"source"`
	Score  types.ResumeScore `json:"score"`
}

func scoreReports(rows []observability.ScoreRow) []scoreReport {
	out := make([]scoreReport, len(rows))
	for i, row := range rows {
		out[i] = scoreReport{Source: row.Source, Score: row.Score}
	}
	return out
}
