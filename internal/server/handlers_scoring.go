package server

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/scoring"
	"github.com/jonathan/resume-builder/internal/types"
)

// AnalyzeRequest is the body of POST /ats/analyze. At most one of
// JobDescription or JobURL supplies the job text. Empty texts are analyzed
// as is and yield an all-zero report.
type AnalyzeRequest struct {
	JobDescription string `json:"job_description"`
	JobURL         string `json:"job_url" validate:"omitempty,url"`
	ResumeText     string `json:"resume_text"`
}

// handleListTemplates returns the template catalogue
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, types.Templates())
}

// handleGetTemplate returns one template
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	tmpl := types.TemplateByID(id)
	if tmpl == nil {
		s.errorResponse(w, http.StatusNotFound, "template not found: "+id)
		return
	}
	s.jsonResponse(w, http.StatusOK, tmpl)
}

// handleScore scores a resume document posted in the body
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	resume, err := s.readResume(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if resume == nil {
		s.writeError(w, r, &ErrValidation{Message: "resume document is required"})
		return
	}

	score := scoring.ScoreResume(resume)
	s.metrics.ObserveResumeScore(score)
	s.jsonResponse(w, http.StatusOK, score)
}

// handleAnalyze matches resume text against a job description or posting URL
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	jobText, err := s.jobDescription(r, req.JobDescription, req.JobURL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	score := ats.AnalyzeAgainstJobDescription(jobText, req.ResumeText)
	s.metrics.ObserveATS("text", score)
	s.jsonResponse(w, http.StatusOK, score)
}

// jobDescription resolves the job text from inline text or a posting URL.
// With neither, the job text is empty.
func (s *Server) jobDescription(r *http.Request, text, url string) (string, error) {
	url = strings.TrimSpace(url)
	switch {
	case strings.TrimSpace(text) != "" && url != "":
		return "", &ErrValidation{Field: "job_url", Message: "provide either job_description or job_url, not both"}
	case url == "":
		return text, nil
	case s.fetcher == nil:
		return "", &ErrValidation{Field: "job_url", Message: "fetching job postings is disabled"}
	}

	posting, err := s.fetcher.JobPostingText(r.Context(), url)
	if err != nil {
		return "", &ErrJobPosting{URL: url, Cause: err}
	}
	return posting, nil
}

// readResume decodes a resume document body. An empty body yields nil.
func (s *Server) readResume(w http.ResponseWriter, r *http.Request) (*types.Resume, error) {
	data, err := readBody(w, r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	resume, err := ingestion.DecodeResume(data)
	if err != nil {
		var ingestErr *ingestion.Error
		if errors.As(err, &ingestErr) {
			return nil, &ErrValidation{Message: ingestErr.Message}
		}
		return nil, err
	}
	return resume, nil
}
