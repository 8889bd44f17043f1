package ats

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

const sectionVocabulary = "degree university college bachelor master phd diploma certification " +
	"graduate academic gpa experience work job position role responsibility project " +
	"team led managed developed implemented"

func TestAnalyze_EmptyJobDescription(t *testing.T) {
	for _, jd := range []string{"", "   ", "the and of to a", "Go JS"} {
		t.Run(fmt.Sprintf("%q", jd), func(t *testing.T) {
			score := AnalyzeAgainstJobDescription(jd, "Senior engineer with a degree and team experience")

			assert.Zero(t, score.Overall)
			assert.Zero(t, score.Education)
			assert.Zero(t, score.Experience)
			assert.Zero(t, score.Skills)
			assert.Empty(t, score.MissingKeywords)
			assert.Empty(t, score.KeywordMatches)
			assert.NotEmpty(t, score.Suggestions)
		})
	}
}

func TestAnalyze_FullOverlap(t *testing.T) {
	text := "Kubernetes Terraform golang postgres " + sectionVocabulary

	score := AnalyzeAgainstJobDescription(text, text)

	assert.Empty(t, score.MissingKeywords)
	assert.Equal(t, []string{SuggestWellMatched}, score.Suggestions)
	assert.InDelta(t, 100.0, score.Skills, 1e-9)
	assert.InDelta(t, 100.0, score.Education, 1e-9)
	assert.InDelta(t, 100.0, score.Experience, 1e-9)
	assert.Equal(t, 100.0, score.Overall, "a full match is exactly 100 without clamping")
}

func TestAnalyze_StemmingEquivalence(t *testing.T) {
	score := AnalyzeAgainstJobDescription("You will manage vendors", "Managed the vendor management process")

	assert.NotContains(t, score.MissingKeywords, "manage")
	assert.NotContains(t, score.MissingKeywords, "vendors")

	relevance := map[string]float64{}
	for _, m := range score.KeywordMatches {
		relevance[m.Keyword] = m.Relevance
	}
	assert.Greater(t, relevance["manage"], 0.0)
	assert.Greater(t, relevance["vendors"], 0.0)
}

func TestAnalyze_TopTenTruncation(t *testing.T) {
	var jd []string
	for i := 0; i < 15; i++ {
		word := fmt.Sprintf("skill%02d", i)
		// Higher indices repeat more so relevance differs.
		jd = append(jd, strings.Repeat(word+" ", i+1))
	}
	jobDescription := strings.Join(jd, " ")
	resume := jobDescription

	score := AnalyzeAgainstJobDescription(jobDescription, resume)

	require.Len(t, score.KeywordMatches, 10)
	for i := 1; i < len(score.KeywordMatches); i++ {
		assert.GreaterOrEqual(t, score.KeywordMatches[i-1].Relevance, score.KeywordMatches[i].Relevance)
	}
	assert.Equal(t, "skill14", score.KeywordMatches[0].Keyword)
	assert.Equal(t, "skill05", score.KeywordMatches[9].Keyword)
}

func TestAnalyze_StableTieOrder(t *testing.T) {
	jd := "kafka redis postgres elastic"
	score := AnalyzeAgainstJobDescription(jd, "elastic postgres redis kafka")

	var got []string
	for _, m := range score.KeywordMatches {
		got = append(got, m.Keyword)
	}
	assert.Equal(t, []string{"kafka", "redis", "postgres", "elastic"}, got)
}

func TestAnalyze_MissingKeywords(t *testing.T) {
	jd := "python django flask celery redis docker kubernetes"
	score := AnalyzeAgainstJobDescription(jd, "Experienced with python and docker")

	assert.Equal(t, []string{"django", "flask", "celery", "redis", "kubernetes"}, score.MissingKeywords)
	assert.InDelta(t, 2.0/7.0*100, score.Skills, 1e-9)
	require.NotEmpty(t, score.Suggestions)
	assert.Equal(t, "Add these missing keywords: django, flask, celery, redis, kubernetes", score.Suggestions[0])

	for _, m := range score.KeywordMatches {
		assert.Greater(t, m.Relevance, 0.0)
	}
}

func TestAnalyze_MissingKeywordMessageCapsAtFive(t *testing.T) {
	jd := "alpha bravo charlie delta echo foxtrot golf hotel"
	score := AnalyzeAgainstJobDescription(jd, "nothing relevant here")

	assert.Len(t, score.MissingKeywords, 8)
	assert.Equal(t, "Add these missing keywords: alpha, bravo, charlie, delta, echo", score.Suggestions[0])
	assert.Empty(t, score.KeywordMatches)
}

func TestAnalyze_SectionScores(t *testing.T) {
	score := AnalyzeAgainstJobDescription("golang", "golang degree university led team")

	assert.InDelta(t, 2.0/11.0*100, score.Education, 1e-9)
	assert.InDelta(t, 2.0/12.0*100, score.Experience, 1e-9)
	assert.InDelta(t, 100.0, score.Skills, 1e-9)
	want := 0.3*score.Education + 0.4*score.Experience + 0.3*score.Skills
	assert.InDelta(t, want, score.Overall, 1e-9)
	assert.Equal(t, []string{SuggestExperience, SuggestEducation}, score.Suggestions)
}

func TestAnalyze_DuplicateJobKeywordsCountedOnce(t *testing.T) {
	score := AnalyzeAgainstJobDescription("golang golang golang rust", "golang")

	assert.Equal(t, []string{"rust"}, score.MissingKeywords)
	assert.InDelta(t, 50.0, score.Skills, 1e-9)
	require.Len(t, score.KeywordMatches, 1)
	assert.Equal(t, "golang", score.KeywordMatches[0].Keyword)
}

func TestAnalyzeResume_UsesPlainText(t *testing.T) {
	resume := &types.Resume{
		Skills:     []types.Skill{{Name: "Kubernetes", Level: types.SkillExpert}},
		Experience: []types.Experience{{Company: "Acme", Position: "SRE", Description: "Managed Terraform rollouts"}},
	}

	score := AnalyzeResume("kubernetes terraform ansible", resume)
	assert.Equal(t, []string{"ansible"}, score.MissingKeywords)

	assert.NotPanics(t, func() { AnalyzeResume("kubernetes", nil) })
}

func TestSectionKeywordLists(t *testing.T) {
	assert.Len(t, EducationKeywords(), 11)
	assert.Len(t, ExperienceKeywords(), 12)

	edu := EducationKeywords()
	edu[0] = "mutated"
	assert.Equal(t, "degree", EducationKeywords()[0])
}
