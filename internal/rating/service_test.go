package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kinostream/backend/internal/models"
)

func TestComputeStats(t *testing.T) {
	t.Run("Mixed values", func(t *testing.T) {
		// Values 5, 4, 1, 2, 5 across five users.
		stats := ComputeStats(map[int]int64{1: 1, 2: 1, 4: 1, 5: 2})

		assert.Equal(t, 3.4, stats.Average)
		assert.Equal(t, int64(5), stats.Count)
		assert.Equal(t, map[string]int64{"1": 1, "2": 1, "3": 0, "4": 1, "5": 2}, stats.Distribution)
	})

	t.Run("No ratings yields zero snapshot", func(t *testing.T) {
		stats := ComputeStats(map[int]int64{})

		assert.Equal(t, models.ZeroRatingStats(), stats)
		assert.Equal(t, 0.0, stats.Average)
		assert.Equal(t, int64(0), stats.Count)
	})

	t.Run("Single rating", func(t *testing.T) {
		stats := ComputeStats(map[int]int64{3: 1})

		assert.Equal(t, 3.0, stats.Average)
		assert.Equal(t, int64(1), stats.Count)
	})

	t.Run("Average rounds to one decimal", func(t *testing.T) {
		// (5 + 4 + 4) / 3 = 4.333... -> 4.3
		stats := ComputeStats(map[int]int64{4: 2, 5: 1})

		assert.Equal(t, 4.3, stats.Average)
	})
}
