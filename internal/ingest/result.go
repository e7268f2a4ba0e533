package ingest

import (
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/geo"

	"github.com/rs/zerolog/log"
)

// Valid jobs and rejected records from one load, both in source order.
type Result struct {
	Jobs     []domain.Job
	Failures []domain.RecordFailure
}

// Add parses one record and files it as a job or a failure.
func (r *Result) Add(row int, rec RawRecord, region geo.Bounds) {
	job, err := ParseRecord(rec, region)
	if err != nil {
		f := domain.RecordFailure{
			Row:            row,
			PickupAddress:  orUnknown(rec.PickupAddress),
			DropoffAddress: orUnknown(rec.DropoffAddress),
			Reason:         err.Error(),
		}
		log.Warn().Int("row", f.Row).Str("reason", f.Reason).Msg("record rejected")
		r.Failures = append(r.Failures, f)
		return
	}
	r.Jobs = append(r.Jobs, job)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
