package services

import (
	"crypto/sha256"
	"delivery-dispatch-service/internal/config"
	"delivery-dispatch-service/internal/domain"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Fingerprint identifies a planning input: the same jobs, in the same order,
// under the same configuration always yield the same plan.
func Fingerprint(jobs []domain.Job, cfg config.Planner) (string, error) {
	payload := struct {
		Jobs   []domain.Job   `json:"jobs"`
		Config config.Planner `json:"config"`
	}{jobs, cfg}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}

	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
