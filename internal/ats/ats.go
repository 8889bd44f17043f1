// Package ats matches resume text against a job description the way an
// applicant tracking system would: keyword extraction, stemming and a
// TF-IDF relevance weight per job description keyword.
package ats

import (
	"sort"

	"github.com/jonathan/resume-builder/internal/keywords"
	"github.com/jonathan/resume-builder/internal/types"
)

// Section weights for the overall score.
const (
	educationWeight  = 0.3
	experienceWeight = 0.4
	skillsWeight     = 0.3
)

const (
	maxKeywordMatches   = 10
	maxMissingInMessage = 5
)

// jobDescriptionDoc is the corpus index of the job description. Relevance is
// always read from this document.
const jobDescriptionDoc = 0

// AnalyzeAgainstJobDescription scores resumeText against jobDescription.
// It never fails. A job description with no usable keywords scores 0 everywhere.
func AnalyzeAgainstJobDescription(jobDescription, resumeText string) types.ATSScore {
	jdKeywords := keywords.Unique(keywords.Extract(jobDescription))
	resumeStems := keywords.StemSet(keywords.Extract(resumeText))

	if len(jdKeywords) == 0 {
		return types.ATSScore{
			MissingKeywords: []string{},
			Suggestions:     suggestions(nil, 0, 0, 0),
			KeywordMatches:  []types.KeywordMatch{},
		}
	}

	corpus := keywords.NewCorpus(jobDescription, resumeText)

	matches := make([]types.KeywordMatch, 0, len(jdKeywords))
	missing := []string{}
	for _, kw := range jdKeywords {
		relevance := 0.0
		if _, ok := resumeStems[keywords.Stem(kw)]; ok {
			relevance = corpus.TFIDF(kw, jobDescriptionDoc)
		}
		matches = append(matches, types.KeywordMatch{Keyword: kw, Relevance: relevance})
		if relevance == 0 {
			missing = append(missing, kw)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Relevance > matches[j].Relevance
	})

	education := sectionScore(resumeStems, educationKeywords)
	experience := sectionScore(resumeStems, experienceKeywords)
	skills := percent(len(jdKeywords)-len(missing), len(jdKeywords))
	overall := education*educationWeight + experience*experienceWeight + skills*skillsWeight

	return types.ATSScore{
		Overall:         overall,
		Education:       education,
		Experience:      experience,
		Skills:          skills,
		MissingKeywords: missing,
		Suggestions:     suggestions(missing, education, experience, skills),
		KeywordMatches:  topMatches(matches),
	}
}

// AnalyzeResume flattens a structured resume to text and analyzes it.
func AnalyzeResume(jobDescription string, resume *types.Resume) types.ATSScore {
	return AnalyzeAgainstJobDescription(jobDescription, resume.PlainText())
}

// topMatches keeps matches with positive relevance, up to maxKeywordMatches.
// matches must already be sorted by descending relevance.
func topMatches(matches []types.KeywordMatch) []types.KeywordMatch {
	out := make([]types.KeywordMatch, 0, maxKeywordMatches)
	for _, m := range matches {
		if m.Relevance <= 0 || len(out) == maxKeywordMatches {
			break
		}
		out = append(out, m)
	}
	return out
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
