package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
)

// ResumeResponse pairs a stored resume with its freshly computed score.
type ResumeResponse struct {
	Resume *types.Resume     `json:"resume"`
	Score  types.ResumeScore `json:"score"`
}

// ResumeATSRequest is the body of POST /resumes/{id}/ats.
type ResumeATSRequest struct {
	JobDescription string `json:"job_description"`
	JobURL         string `json:"job_url" validate:"omitempty,url"`
}

// handleListResumes lists the caller's resumes
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	resumes, err := s.resumeService.List(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resumes)
}

// handleCreateResume stores a new resume; an empty body creates a blank one
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	resume, err := s.readResume(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	created, score, err := s.resumeService.Create(r.Context(), userID, resume)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.ObserveResumeScore(score)
	s.jsonResponse(w, http.StatusCreated, ResumeResponse{Resume: created, Score: score})
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	resume, err := s.resumeService.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	resume, err := s.readResume(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	updated, score, err := s.resumeService.Update(r.Context(), userID, r.PathValue("id"), resume)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.ObserveResumeScore(score)
	s.jsonResponse(w, http.StatusOK, ResumeResponse{Resume: updated, Score: score})
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	if err := s.resumeService.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleResumeScore recomputes the structural score of a stored resume
func (s *Server) handleResumeScore(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	score, err := s.resumeService.Score(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.ObserveResumeScore(score)
	s.jsonResponse(w, http.StatusOK, score)
}

// handleResumeATS analyzes a stored resume against a job description
func (s *Server) handleResumeATS(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var req ResumeATSRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	// Ownership is checked before any outbound fetch.
	resumeID := r.PathValue("id")
	if _, err := s.resumeService.Get(r.Context(), userID, resumeID); err != nil {
		s.writeError(w, r, err)
		return
	}
	jobText, err := s.jobDescription(r, req.JobDescription, req.JobURL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	score, err := s.resumeService.Analyze(r.Context(), userID, resumeID, jobText)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.ObserveATS("stored", score)
	s.jsonResponse(w, http.StatusOK, score)
}

// handleRecordDownload counts an export of the resume
func (s *Server) handleRecordDownload(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	if err := s.resumeService.RecordDownload(r.Context(), userID, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requireUser extracts the authenticated user or writes 401.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.UserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}
