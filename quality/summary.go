package quality

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes one metric over a mesh.
type Stats struct {
	Min, Mean, Max float64
}

// Summary aggregates the records of one mesh snapshot.
type Summary struct {
	Count         int
	Skewness      Stats
	Orthogonality Stats
}

// Summarize computes min, mean and max of both metrics. An empty slice gives
// a zero Summary.
func Summarize(records []Record) Summary {
	if len(records) == 0 {
		return Summary{}
	}
	skew := make([]float64, len(records))
	ortho := make([]float64, len(records))
	for i, r := range records {
		skew[i] = r.Skewness
		ortho[i] = r.Orthogonality
	}
	return Summary{
		Count:         len(records),
		Skewness:      stats(skew),
		Orthogonality: stats(ortho),
	}
}

func stats(values []float64) Stats {
	return Stats{
		Min:  floats.Min(values),
		Mean: stat.Mean(values, nil),
		Max:  floats.Max(values),
	}
}

// Field extracts one metric per triangle, in mesh order, for coloring.
func Field(records []Record, metric func(Record) float64) []float64 {
	field := make([]float64, len(records))
	for i, r := range records {
		field[i] = metric(r)
	}
	return field
}

// Metric selectors for Field.
func SkewnessOf(r Record) float64      { return r.Skewness }
func OrthogonalityOf(r Record) float64 { return r.Orthogonality }
