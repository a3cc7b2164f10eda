package analytics

import (
	"math"
	"sort"

	"github.com/samber/lo"
)

const (
	TargetMin = 70
	TargetMax = 180
)

// Stats summarises a set of readings. Fields are nil when there is no data.
type Stats struct {
	Min     *float64 `json:"min"`
	Max     *float64 `json:"max"`
	Average *float64 `json:"average"`
	StdDev  *float64 `json:"std_dev"`
}

// Distribution is a boxplot description of glucose readings.
type Distribution struct {
	Values    []int   `json:"values"`
	Q1        float64 `json:"q1"`
	Median    float64 `json:"median"`
	Q3        float64 `json:"q3"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Outliers  []int   `json:"outliers"`
	TargetMin int     `json:"target_min"`
	TargetMax int     `json:"target_max"`
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	return float64(lo.Sum(values)) / float64(len(values))
}

// popStdDev is the population standard deviation.
func popStdDev(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	avg := mean(values)
	var sq float64
	for _, v := range values {
		d := float64(v) - avg
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

// Summarize computes average, extremes and population standard deviation.
func Summarize(values []int) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	minV := float64(lo.Min(values))
	maxV := float64(lo.Max(values))
	avg := mean(values)
	sd := popStdDev(values)
	return Stats{Min: &minV, Max: &maxV, Average: &avg, StdDev: &sd}
}

// ComputeDistribution uses nearest-rank quartiles (index floor(n*p) of the
// sorted values) and Tukey fences at 1.5 IQR. It returns nil for no data.
func ComputeDistribution(values []int) *Distribution {
	n := len(values)
	if n == 0 {
		return nil
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)

	var median float64
	if n%2 == 1 {
		median = float64(sorted[n/2])
	} else {
		median = float64(sorted[n/2-1]+sorted[n/2]) / 2
	}
	q1 := float64(sorted[int(float64(n)*0.25)])
	q3 := float64(sorted[int(float64(n)*0.75)])
	iqr := q3 - q1
	low, high := q1-1.5*iqr, q3+1.5*iqr

	outliers := lo.Filter(sorted, func(v int, _ int) bool {
		return float64(v) < low || float64(v) > high
	})

	return &Distribution{
		Values:    sorted,
		Q1:        q1,
		Median:    median,
		Q3:        q3,
		Min:       float64(sorted[0]),
		Max:       float64(sorted[n-1]),
		Outliers:  outliers,
		TargetMin: TargetMin,
		TargetMax: TargetMax,
	}
}
