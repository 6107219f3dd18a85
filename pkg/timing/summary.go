package timing

import (
	"fmt"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the CPU times of a run, in seconds.
type Summary struct {
	Loci   int
	Total  float64
	Mean   float64
	Median float64
	Max    float64
}

// Summarize parses the CPU times of records. Records are stored as text, so
// a value that is not a number is reported here and nowhere else.
func Summarize(records []Record) (Summary, error) {
	if len(records) == 0 {
		return Summary{}, nil
	}
	x := make([]float64, 0, len(records))
	for _, r := range records {
		v, err := strconv.ParseFloat(r.CPUTime, 64)
		if err != nil {
			return Summary{}, fmt.Errorf("locus %d: invalid cpu time %q", r.Index, r.CPUTime)
		}
		x = append(x, v)
	}
	sort.Float64s(x)
	return Summary{
		Loci:   len(x),
		Total:  floats.Sum(x),
		Mean:   stat.Mean(x, nil),
		Median: stat.Quantile(0.5, stat.Empirical, x, nil),
		Max:    floats.Max(x),
	}, nil
}
