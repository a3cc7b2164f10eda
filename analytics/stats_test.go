package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDistribution(t *testing.T) {
	d := ComputeDistribution([]int{350, 70, 95, 100, 105, 110, 120, 180})
	require.NotNil(t, d)

	assert.Equal(t, []int{70, 95, 100, 105, 110, 120, 180, 350}, d.Values)
	assert.Equal(t, 107.5, d.Median)
	assert.Equal(t, 100.0, d.Q1)
	assert.Equal(t, 180.0, d.Q3)
	assert.Equal(t, 70.0, d.Min)
	assert.Equal(t, 350.0, d.Max)
	assert.Equal(t, []int{350}, d.Outliers)
	assert.Equal(t, 70, d.TargetMin)
	assert.Equal(t, 180, d.TargetMax)
}

func TestComputeDistributionOddAndEmpty(t *testing.T) {
	d := ComputeDistribution([]int{120, 100, 110})
	require.NotNil(t, d)
	assert.Equal(t, 110.0, d.Median)
	assert.Equal(t, 100.0, d.Q1)
	assert.Equal(t, 110.0, d.Q3)
	assert.Empty(t, d.Outliers)

	assert.Nil(t, ComputeDistribution(nil))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]int{2, 4, 4, 4, 5, 5, 7, 9})
	require.NotNil(t, s.StdDev)
	assert.Equal(t, 2.0, *s.StdDev)
	assert.Equal(t, 5.0, *s.Average)
	assert.Equal(t, 2.0, *s.Min)
	assert.Equal(t, 9.0, *s.Max)

	empty := Summarize(nil)
	assert.Nil(t, empty.Min)
	assert.Nil(t, empty.StdDev)
}
