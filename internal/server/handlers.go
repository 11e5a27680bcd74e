package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/job-search-agent/internal/db"
)

var validate = validator.New()

// RunRequest is the body of POST /run.
type RunRequest struct {
	ResumeText string `json:"resume_text" validate:"required"`
	TargetRole string `json:"target_role"`
}

// handleRun executes a full pipeline run and returns the report.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "resume_text is required")
		return
	}

	p := s.newPipeline()
	ctx := r.Context()

	runID, _ := uuid.Parse(p.RunID())
	if s.store != nil {
		if err := s.store.CreateRun(ctx, runID, "", req.TargetRole); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "failed to record run")
			return
		}
	}

	report, err := p.Run(ctx, req.ResumeText, req.TargetRole)
	if err != nil {
		if s.store != nil {
			_ = s.store.CompleteRun(ctx, runID, db.StatusFailed)
			_ = s.store.SaveArtifact(ctx, runID, "trace", p.Trace())
		}
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if s.store != nil {
		_ = s.store.SetCandidateName(ctx, runID, report.CandidateName)
		_ = s.store.SaveArtifact(ctx, runID, db.StepProfile, p.Profile())
		_ = s.store.SaveArtifact(ctx, runID, db.StepOpportunities, p.Opportunities())
		_ = s.store.SaveArtifact(ctx, runID, db.StepFitResults, p.Fits())
		_ = s.store.SaveArtifact(ctx, runID, db.StepRanking, report.Ranking)
		if err := s.store.SaveArtifact(ctx, runID, db.StepReport, report); err == nil {
			_ = s.store.CompleteRun(ctx, runID, db.StatusCompleted)
		}
	}

	s.jsonResponse(w, http.StatusOK, report)
}

// handleListRuns lists recent persisted runs.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "run persistence is not configured")
		return
	}

	runs, err := s.store.ListRuns(r.Context(), 50)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	if runs == nil {
		runs = []db.Run{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": runs})
}

// handleRunReport returns the stored report for one run.
func (s *Server) handleRunReport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "run persistence is not configured")
		return
	}

	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid run id")
		return
	}

	content, err := s.store.GetArtifact(r.Context(), runID, db.StepReport)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load report")
		return
	}
	if content == nil {
		s.errorResponse(w, http.StatusNotFound, "report not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
