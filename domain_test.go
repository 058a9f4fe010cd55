package tempo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSatAdd(t *testing.T) {
	assert.Equal(t, int64(7), satAdd(3, 4))
	assert.Equal(t, int64(-1), satAdd(3, -4))
	assert.Equal(t, int64(math.MaxInt64), satAdd(math.MaxInt64, 1))
	assert.Equal(t, int64(math.MinInt64), satAdd(math.MinInt64, -1))
}

func TestSatMul(t *testing.T) {
	assert.Equal(t, int64(12), satMul(3, 4))
	assert.Equal(t, int64(-12), satMul(3, -4))
	assert.Zero(t, satMul(0, math.MaxInt64))
	assert.Equal(t, int64(math.MaxInt64), satMul(math.MaxInt64, 2))
	assert.Equal(t, int64(math.MinInt64), satMul(math.MaxInt64, -2))
	assert.Equal(t, int64(math.MaxInt64), satMul(math.MinInt64, -1))
	assert.Equal(t, int64(math.MaxInt64), satMul(-1, math.MinInt64))
}

func TestResourceGainScaleTruncates(t *testing.T) {
	gains := ResourceGain{"gold": 15, "food": -15}
	scaled := gains.Scale(0.5)

	assert.Equal(t, int64(7), scaled["gold"])
	assert.Equal(t, int64(-7), scaled["food"])
}
