package handlers

import (
	"delivery-dispatch-service/internal/api/dto"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/platform/obs"
	"delivery-dispatch-service/internal/ports"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Str("req_id", obs.RequestID(r.Context())).Str("method", r.Method).Str("path", r.URL.Path).Err(err).Msg("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// Map a source error onto a response: missing data is 404, empty data 400,
// anything else a logged 500.
func writeSourceError(w http.ResponseWriter, r *http.Request, what string, err error) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, r, http.StatusNotFound, what+" not found")
	case errors.Is(err, ports.ErrEmptySource):
		writeError(w, r, http.StatusBadRequest, what+" is empty")
	default:
		log.Error().Str("req_id", obs.RequestID(r.Context())).Str("path", r.URL.Path).Err(err).Msg(what + " failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

func toCoordinates(c domain.Coordinates) dto.CoordinatesResponse {
	return dto.CoordinatesResponse{Lat: c.Lat, Lng: c.Lng}
}

func toWindow(w domain.TimeWindow) dto.WindowResponse {
	return dto.WindowResponse{From: w.From.String(), To: w.To.String()}
}

func toJob(j domain.Job) dto.JobResponse {
	return dto.JobResponse{
		PickupAddress:  j.PickupAddress,
		Pickup:         toCoordinates(j.Pickup),
		PickupWindow:   toWindow(j.PickupWindow),
		DropoffAddress: j.DropoffAddress,
		Dropoff:        toCoordinates(j.Dropoff),
		DropoffWindow:  toWindow(j.DropoffWindow),
	}
}

func toJobs(jobs []domain.Job) []dto.JobResponse {
	out := make([]dto.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJob(j))
	}
	return out
}
