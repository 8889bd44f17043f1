package ats

import (
	"fmt"
	"strings"
)

// actionableThreshold is the section percentage below which a suggestion is made.
const actionableThreshold = 70

// Suggestion messages.
const (
	SuggestSkills      = "Consider adding more relevant technical skills"
	SuggestExperience  = "Add more detailed work experience with action verbs"
	SuggestEducation   = "Ensure education section includes relevant certifications and degrees"
	SuggestWellMatched = "Your resume is well-optimized for this job!"
)

// suggestions returns the actionable messages in a fixed order, or the single
// well-matched message when nothing is actionable. The list is never empty.
func suggestions(missing []string, education, experience, skills float64) []string {
	var out []string

	if len(missing) > 0 {
		shown := missing[:min(len(missing), maxMissingInMessage)]
		out = append(out, fmt.Sprintf("Add these missing keywords: %s", strings.Join(shown, ", ")))
	}
	if skills < actionableThreshold {
		out = append(out, SuggestSkills)
	}
	if experience < actionableThreshold {
		out = append(out, SuggestExperience)
	}
	if education < actionableThreshold {
		out = append(out, SuggestEducation)
	}

	if len(out) == 0 {
		return []string{SuggestWellMatched}
	}
	return out
}
