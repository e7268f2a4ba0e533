package services

import "delivery-dispatch-service/internal/domain"

// JobPool holds the jobs still waiting for a route, in input order.
// The fleet planner owns it; route construction only reads a view.
type JobPool struct {
	jobs []domain.Job
}

func NewJobPool(jobs []domain.Job) *JobPool {
	return &JobPool{jobs: append([]domain.Job(nil), jobs...)}
}

func (p *JobPool) Len() int { return len(p.jobs) }

// View returns the current jobs. Callers must not modify the slice.
func (p *JobPool) View() []domain.Job { return p.jobs }

// Remove drops every job whose key matches one of the given jobs and reports
// how many were dropped. Order of the remaining jobs is preserved.
func (p *JobPool) Remove(assigned []domain.Job) int {
	keys := make(map[string]struct{}, len(assigned))
	for _, j := range assigned {
		keys[j.Key()] = struct{}{}
	}

	kept := make([]domain.Job, 0, len(p.jobs))
	for _, j := range p.jobs {
		if _, ok := keys[j.Key()]; ok {
			continue
		}
		kept = append(kept, j)
	}

	removed := len(p.jobs) - len(kept)
	p.jobs = kept
	return removed
}
