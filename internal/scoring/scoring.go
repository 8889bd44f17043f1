// Package scoring computes the structural completeness score of a resume.
package scoring

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/types"
)

// Section caps. The three caps sum to 100.
const (
	MaxEducationScore  = 35
	MaxExperienceScore = 35
	MaxSkillsScore     = 30
)

// Weighting constants for education and experience.
const (
	entryBasePoints    = 5
	maxEntryBase       = 15
	completenessPool   = 20.0
	maxEntryPoints     = 7
	minEducationDesc   = 20 // characters; description must be longer
	skillBasePoints    = 2
	maxSkillBase       = 10
	maxSkillCompletion = 20
)

// Description word-count tiers for experience entries.
const (
	richDescriptionWords    = 30
	solidDescriptionWords   = 20
	minimalDescriptionWords = 10
)

// ScoreResume scores a resume out of 100. It never fails: absent or empty
// sections score 0 and a nil resume scores as an empty one.
func ScoreResume(resume *types.Resume) types.ResumeScore {
	if resume == nil {
		resume = &types.Resume{}
	}

	education := scoreEducation(resume.Education)
	experience := scoreExperience(resume.Experience)
	skills := scoreSkills(resume.Skills)
	total := education + experience + skills

	return types.ResumeScore{
		Total:      total,
		Education:  education,
		Experience: experience,
		Skills:     skills,
		Feedback: types.ScoreFeedback{
			Overall:      overallFeedback(total),
			Improvements: improvements(resume, education, experience, skills),
		},
	}
}

// scoreEducation returns 0-35: a base for having entries plus a completeness pool
// shared between entries so that it never exceeds 20 in aggregate.
func scoreEducation(entries []types.Education) int {
	if len(entries) == 0 {
		return 0
	}

	score := min(len(entries)*entryBasePoints, maxEntryBase)

	completeness := 0.0
	weight := entryWeight(len(entries))
	for _, edu := range entries {
		completeness += float64(min(educationEntryPoints(edu), maxEntryPoints)) * weight
	}

	score += int(math.Round(completeness))
	return min(score, MaxEducationScore)
}

func educationEntryPoints(edu types.Education) int {
	points := 0

	// Essential fields (max 4)
	if edu.Institution != "" {
		points++
	}
	if edu.FieldOfStudy != "" {
		points++
	}
	if edu.StartDate != "" {
		points++
	}
	if edu.EndDate != "" || edu.Present {
		points++
	}

	// Optional fields (max 3)
	if utf8.RuneCountInString(edu.Description) > minEducationDesc {
		points++
	}
	if edu.Location != "" {
		points++
	}
	if edu.GPA != "" {
		points++
	}

	return points
}

// scoreExperience mirrors scoreEducation with a word-count rule for descriptions.
func scoreExperience(entries []types.Experience) int {
	if len(entries) == 0 {
		return 0
	}

	score := min(len(entries)*entryBasePoints, maxEntryBase)

	completeness := 0.0
	weight := entryWeight(len(entries))
	for _, exp := range entries {
		completeness += float64(min(experienceEntryPoints(exp), maxEntryPoints)) * weight
	}

	score += int(math.Round(completeness))
	return min(score, MaxExperienceScore)
}

func experienceEntryPoints(exp types.Experience) int {
	points := 0

	// Essential fields (max 4)
	if exp.Company != "" {
		points++
	}
	if exp.Position != "" {
		points++
	}
	if exp.StartDate != "" {
		points++
	}
	if exp.EndDate != "" || exp.Present {
		points++
	}

	// Description quality (max 3)
	switch words := wordCount(exp.Description); {
	case words >= richDescriptionWords:
		points += 3
	case words >= solidDescriptionWords:
		points += 2
	case words >= minimalDescriptionWords:
		points++
	}

	return points
}

func scoreSkills(skills []types.Skill) int {
	if len(skills) == 0 {
		return 0
	}

	score := min(len(skills)*skillBasePoints, maxSkillBase)

	completeness := 0
	for _, skill := range skills {
		switch {
		case skill.Name != "" && skill.Level != "":
			completeness += 2
		case skill.Name != "":
			completeness++
		}
	}

	score += min(completeness, maxSkillCompletion)
	return min(score, MaxSkillsScore)
}

// entryWeight spreads the completeness pool over n entries of maxEntryPoints each.
func entryWeight(n int) float64 {
	return completenessPool / float64(n*maxEntryPoints)
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
