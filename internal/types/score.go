package types

// ResumeScore is the structural completeness score of a resume.
// It is derived on demand and never stored as the source of truth.
type ResumeScore struct {
	Total      int           `json:"total"`
	Education  int           `json:"education"`  // Out of 35
	Experience int           `json:"experience"` // Out of 35
	Skills     int           `json:"skills"`     // Out of 30
	Feedback   ScoreFeedback `json:"feedback"`
}

// ScoreFeedback holds the overall narrative and the ordered improvement list.
type ScoreFeedback struct {
	Overall      string   `json:"overall"`
	Improvements []string `json:"improvements"`
}

// KeywordMatch is a job-description keyword and its relevance in the resume.
type KeywordMatch struct {
	Keyword   string  `json:"keyword"`
	Relevance float64 `json:"relevance"`
}

// ATSScore is the keyword relevance report of a resume against a job description.
// Section scores are percentages (0-100), a different scale from ResumeScore.
type ATSScore struct {
	Overall         float64        `json:"overall"`
	Education       float64        `json:"education"`
	Experience      float64        `json:"experience"`
	Skills          float64        `json:"skills"`
	MissingKeywords []string       `json:"missing_keywords"`
	Suggestions     []string       `json:"suggestions"`
	KeywordMatches  []KeywordMatch `json:"keyword_matches"`
}
