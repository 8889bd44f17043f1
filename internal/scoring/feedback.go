package scoring

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Overall feedback tiers by total score.
const (
	excellentThreshold = 90
	goodThreshold      = 70
	fairThreshold      = 50
)

// Overall narratives, one per tier.
const (
	FeedbackExcellent = "Excellent resume! You have a comprehensive and well-detailed profile."
	FeedbackGood      = "Good resume! Consider the suggestions below to make it even better."
	FeedbackFair      = "Your resume is coming along. Follow the suggestions below to strengthen it."
	FeedbackSparse    = "Your resume needs more details. Use the suggestions below as a guide."
)

// Improvement messages.
const (
	ImproveAddEducation          = "Add your educational background starting with SSC"
	ImproveEducationDescriptions = "Add descriptions to your education entries"
	ImproveEducationGPA          = "Add GPA/percentage to your education entries"
	ImproveAddExperience         = "Add your work experience or relevant projects"
	ImproveExperienceDetail      = "Enhance your experience descriptions with more details (aim for 20+ words)"
	ImproveExperienceLocations   = "Add locations to your experience entries"
	ImproveAddSkills             = "Add relevant skills to your resume"
	ImproveSkillLevels           = "Add proficiency levels to your skills"
)

// minExperienceWords is the description length below which an entry is flagged.
const minExperienceWords = 20

func overallFeedback(total int) string {
	switch {
	case total >= excellentThreshold:
		return FeedbackExcellent
	case total >= goodThreshold:
		return FeedbackGood
	case total >= fairThreshold:
		return FeedbackFair
	default:
		return FeedbackSparse
	}
}

// improvements lists suggestions per section. A section that already scores its
// cap contributes nothing.
func improvements(resume *types.Resume, education, experience, skills int) []string {
	out := []string{}

	if education < MaxEducationScore {
		out = append(out, educationImprovements(resume.Education)...)
	}
	if experience < MaxExperienceScore {
		out = append(out, experienceImprovements(resume.Experience)...)
	}
	if skills < MaxSkillsScore {
		out = append(out, skillImprovements(resume.Skills)...)
	}

	return out
}

func educationImprovements(entries []types.Education) []string {
	if len(entries) == 0 {
		return []string{ImproveAddEducation}
	}

	var out []string
	if missing := missingEducationLevels(entries); len(missing) > 0 {
		out = append(out, "Add your "+strings.Join(missing, ", ")+" education details")
	}
	if anyEducation(entries, func(e types.Education) bool { return e.Description == "" }) {
		out = append(out, ImproveEducationDescriptions)
	}
	if anyEducation(entries, func(e types.Education) bool { return e.GPA == "" }) {
		out = append(out, ImproveEducationGPA)
	}
	return out
}

// missingEducationLevels returns the canonical levels with no entry, in canonical order.
func missingEducationLevels(entries []types.Education) []string {
	present := make(map[types.EducationLevel]bool, len(entries))
	for _, e := range entries {
		present[e.Level] = true
	}

	var missing []string
	for _, level := range types.EducationLevels() {
		if !present[level] {
			missing = append(missing, string(level))
		}
	}
	return missing
}

func experienceImprovements(entries []types.Experience) []string {
	if len(entries) == 0 {
		return []string{ImproveAddExperience}
	}

	var out []string
	if anyExperience(entries, func(e types.Experience) bool { return wordCount(e.Description) < minExperienceWords }) {
		out = append(out, ImproveExperienceDetail)
	}
	if anyExperience(entries, func(e types.Experience) bool { return e.Location == "" }) {
		out = append(out, ImproveExperienceLocations)
	}
	return out
}

func skillImprovements(skills []types.Skill) []string {
	if len(skills) == 0 {
		return []string{ImproveAddSkills}
	}
	for _, s := range skills {
		if s.Level == "" {
			return []string{ImproveSkillLevels}
		}
	}
	return nil
}

func anyEducation(entries []types.Education, pred func(types.Education) bool) bool {
	for _, e := range entries {
		if pred(e) {
			return true
		}
	}
	return false
}

func anyExperience(entries []types.Experience, pred func(types.Experience) bool) bool {
	for _, e := range entries {
		if pred(e) {
			return true
		}
	}
	return false
}
