// Package types provides type definitions for structured data used throughout the resume-builder system.
package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EducationLevel is the stage of education an entry belongs to.
type EducationLevel string

// Education levels in canonical order.
const (
	LevelSSC          EducationLevel = "SSC"
	LevelHSC          EducationLevel = "HSC"
	LevelHigherDegree EducationLevel = "Higher Degree"
)

// EducationLevels returns the canonical education levels in display order.
func EducationLevels() []EducationLevel {
	return []EducationLevel{LevelSSC, LevelHSC, LevelHigherDegree}
}

// SkillLevel is a 4-point proficiency scale. The zero value means "not provided".
type SkillLevel string

// Skill proficiency levels.
const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
	SkillExpert       SkillLevel = "Expert"
)

// DefaultTemplateID is the template assigned to newly created resumes.
const DefaultTemplateID = "modern-1"

// Resume is a complete resume document as edited by a user.
type Resume struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Title           string          `json:"title" validate:"max=200"`
	TemplateID      string          `json:"template_id"`
	CreatedAt       string          `json:"created_at,omitempty"`
	UpdatedAt       string          `json:"updated_at,omitempty"`
	Score           *int            `json:"score,omitempty"` // cached display value only
	PersonalDetails PersonalDetails `json:"personal_details"`
	Education       []Education     `json:"education" validate:"dive"`
	Experience      []Experience    `json:"experience" validate:"dive"`
	Skills          []Skill         `json:"skills" validate:"dive"`
	Achievements    []Achievement   `json:"achievements,omitempty" validate:"dive"`
	Projects        []Project       `json:"projects,omitempty" validate:"dive"`
}

// PersonalDetails holds contact information and the profile summary.
type PersonalDetails struct {
	FullName string `json:"full_name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
	Summary  string `json:"summary,omitempty"`
	Photo    string `json:"photo,omitempty"`
	JobTitle string `json:"job_title,omitempty"`
	Location string `json:"location,omitempty"`
}

// Education is a single education entry.
type Education struct {
	ID           string         `json:"id"`
	Level        EducationLevel `json:"level" validate:"omitempty,oneof=SSC HSC 'Higher Degree'"`
	Institution  string         `json:"institution"`
	FieldOfStudy string         `json:"field_of_study,omitempty"`
	Degree       string         `json:"degree,omitempty"`
	StartDate    string         `json:"start_date"`
	EndDate      string         `json:"end_date,omitempty"`
	Present      bool           `json:"present,omitempty"`
	Description  string         `json:"description,omitempty"`
	GPA          string         `json:"gpa,omitempty"`
	Location     string         `json:"location,omitempty"`
}

// Experience is a single work experience entry.
type Experience struct {
	ID           string   `json:"id"`
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date,omitempty"`
	Present      bool     `json:"present,omitempty"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements,omitempty"`
}

// Skill is a named skill with an optional proficiency level.
type Skill struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Level SkillLevel `json:"level,omitempty" validate:"omitempty,oneof=Beginner Intermediate Advanced Expert"`
}

// Achievement is a display-only entry; it does not contribute to scoring.
type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
}

// Project is a display-only entry; it does not contribute to scoring.
type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty" validate:"omitempty,url"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
}

// NewResume returns an empty resume owned by userID.
func NewResume(userID string) *Resume {
	now := time.Now().UTC().Format(time.RFC3339)
	return &Resume{
		ID:           uuid.NewString(),
		UserID:       userID,
		Title:        "Untitled Resume",
		TemplateID:   DefaultTemplateID,
		CreatedAt:    now,
		UpdatedAt:    now,
		Education:    []Education{},
		Experience:   []Experience{},
		Skills:       []Skill{},
		Achievements: []Achievement{},
	}
}

// NewEducation returns an empty education entry at the given level.
func NewEducation(level EducationLevel) Education {
	return Education{ID: uuid.NewString(), Level: level}
}

// NewExperience returns an empty experience entry.
func NewExperience() Experience {
	return Experience{ID: uuid.NewString(), Achievements: []string{}}
}

// NewSkill returns an empty skill at beginner level.
func NewSkill() Skill {
	return Skill{ID: uuid.NewString(), Level: SkillBeginner}
}

// PlainText flattens the resume into the free text used for keyword analysis.
// Sections are separated by blank lines; empty fields are skipped.
func (r *Resume) PlainText() string {
	if r == nil {
		return ""
	}

	var sections []string
	add := func(lines ...string) {
		var kept []string
		for _, l := range lines {
			if l = strings.TrimSpace(l); l != "" {
				kept = append(kept, l)
			}
		}
		if len(kept) > 0 {
			sections = append(sections, strings.Join(kept, "\n"))
		}
	}

	pd := r.PersonalDetails
	add(pd.FullName, pd.JobTitle, pd.Summary)

	for _, edu := range r.Education {
		add(string(edu.Level), edu.Degree, edu.FieldOfStudy, edu.Institution, edu.Location, gpaLine(edu.GPA), edu.Description)
	}
	for _, exp := range r.Experience {
		lines := []string{exp.Position, exp.Company, exp.Location, exp.Description}
		lines = append(lines, exp.Achievements...)
		add(lines...)
	}
	for _, a := range r.Achievements {
		add(a.Title, a.Description)
	}
	for _, p := range r.Projects {
		add(p.Name, p.Description, strings.Join(p.Technologies, ", "))
	}
	if len(r.Skills) > 0 {
		names := make([]string, 0, len(r.Skills))
		for _, s := range r.Skills {
			if s.Name != "" {
				names = append(names, s.Name)
			}
		}
		add(strings.Join(names, ", "))
	}

	return strings.Join(sections, "\n\n")
}

func gpaLine(gpa string) string {
	if gpa == "" {
		return ""
	}
	return "GPA " + gpa
}
