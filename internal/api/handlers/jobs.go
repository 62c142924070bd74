package handlers

import (
	"errors"
	"net/http"

	"github.com/gcoelho/carteira-manager-backend/internal/scheduler"
)

// JobsHandler exposes manual triggers for the two batch jobs. The routes
// are guarded by the internal API key middleware.
type JobsHandler struct {
	scheduler *scheduler.Scheduler
}

// NewJobsHandler creates a new JobsHandler
func NewJobsHandler(sched *scheduler.Scheduler) *JobsHandler {
	return &JobsHandler{
		scheduler: sched,
	}
}

// RunImport triggers the valuation import and returns its summary.
func (h *JobsHandler) RunImport(w http.ResponseWriter, r *http.Request) {
	summary, err := h.scheduler.TriggerImport(r.Context())
	if errors.Is(err, scheduler.ErrJobAlreadyRunning) {
		respondError(w, http.StatusConflict, "Import already running", "")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Import failed", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// RunPerformance triggers the performance calculation and returns its summary.
func (h *JobsHandler) RunPerformance(w http.ResponseWriter, r *http.Request) {
	summary, err := h.scheduler.TriggerPerformance(r.Context())
	if errors.Is(err, scheduler.ErrJobAlreadyRunning) {
		respondError(w, http.StatusConflict, "Performance calculation already running", "")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Performance calculation failed", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
