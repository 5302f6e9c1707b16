package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafetyStockMinimumFloor(t *testing.T) {
	// No demand and no history still yields the absolute minimum buffer.
	got := SafetyStock(DefaultPolicy(), 0, 30, 0, 0, 7, 0.95)
	assert.Equal(t, 5, got)
}

func TestSafetyStockDailyDemandFloorDominates(t *testing.T) {
	// Steady 10/day demand with matching recent/older rates: the variance
	// term computes to 9 but the three-day demand floor wins at 30.
	got := SafetyStock(DefaultPolicy(), 300, 30, 300, 600, 7, 0.95)
	assert.Equal(t, 30, got)
}

func TestSafetyStockServiceLevelZScores(t *testing.T) {
	// Pure variance case: recent 20/day vs older 0/day, stddev 10/day,
	// sqrt(7) lead scaling. Only the z multiplier differs per level.
	assert.Equal(t, 44, SafetyStock(DefaultPolicy(), 0, 30, 600, 0, 7, 0.95))
	assert.Equal(t, 62, SafetyStock(DefaultPolicy(), 0, 30, 600, 0, 7, 0.99))
	assert.Equal(t, 34, SafetyStock(DefaultPolicy(), 0, 30, 600, 0, 7, 0.90))
}

func TestSafetyStockDefaultsDegenerateInputs(t *testing.T) {
	// Non-positive horizon and lead time fall back to 1 day and the
	// default lead time instead of dividing by zero.
	got := SafetyStock(DefaultPolicy(), 10, 0, 0, 0, 0, 0.95)
	assert.GreaterOrEqual(t, got, 30) // 10/day over 3 floor days
}
