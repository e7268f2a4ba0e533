package services

import (
	"delivery-dispatch-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobPoolRemoveByKey(t *testing.T) {
	a := northJob("a", 0.001, "09:00:00", "17:00:00")
	b := northJob("b", 0.002, "09:00:00", "17:00:00")
	aTwin := northJob("a", 0.003, "12:00:00", "13:00:00")
	c := northJob("c", 0.004, "09:00:00", "17:00:00")

	input := []domain.Job{a, b, aTwin, c}
	pool := NewJobPool(input)

	removed := pool.Remove([]domain.Job{a})

	assert.Equal(t, 2, removed)
	assert.Equal(t, []domain.Job{b, c}, pool.View())
	assert.Equal(t, 2, pool.Len())
	assert.Len(t, input, 4)
}
