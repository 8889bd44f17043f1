package ats

import "github.com/jonathan/resume-builder/internal/keywords"

var educationKeywords = []string{
	"degree", "university", "college", "bachelor", "master", "phd",
	"diploma", "certification", "graduate", "academic", "gpa",
}

var experienceKeywords = []string{
	"experience", "work", "job", "position", "role", "responsibility",
	"project", "team", "led", "managed", "developed", "implemented",
}

// EducationKeywords returns the fixed vocabulary used for the education score.
func EducationKeywords() []string {
	return append([]string(nil), educationKeywords...)
}

// ExperienceKeywords returns the fixed vocabulary used for the experience score.
func ExperienceKeywords() []string {
	return append([]string(nil), experienceKeywords...)
}

// sectionScore is the percentage of vocab whose stem occurs in resumeStems.
func sectionScore(resumeStems map[string]struct{}, vocab []string) float64 {
	found := 0
	for _, word := range vocab {
		if _, ok := resumeStems[keywords.Stem(word)]; ok {
			found++
		}
	}
	return percent(found, len(vocab))
}
