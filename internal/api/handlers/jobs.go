package handlers

import (
	"delivery-dispatch-service/internal/api/dto"
	"delivery-dispatch-service/internal/ports"
	"net/http"
)

// JobHandler exposes the validated job pool and rejected records.
type JobHandler struct {
	Source ports.JobSource
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	jobs, failures, err := h.Source.LoadJobs(r.Context())
	if err != nil {
		writeSourceError(w, r, "job source", err)
		return
	}

	res := dto.ListJobsResponse{
		Jobs:     toJobs(jobs),
		Failures: make([]dto.RecordFailureResponse, 0, len(failures)),
	}
	for _, f := range failures {
		res.Failures = append(res.Failures, dto.RecordFailureResponse{
			Row:            f.Row,
			PickupAddress:  f.PickupAddress,
			DropoffAddress: f.DropoffAddress,
			Reason:         f.Reason,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
