package dataset

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes features to zero mean and unit variance. Statistics
// are fit on one trial's shuffled data only; a scaler is never reused across
// trials or classes.
type Scaler struct {
	mean []float64
	std  []float64
}

// FitScaler computes per-feature mean and population standard deviation.
func FitScaler(data *mat.Dense) *Scaler {
	n, d := data.Dims()
	s := &Scaler{
		mean: make([]float64, d),
		std:  make([]float64, d),
	}
	col := make([]float64, n)
	for j := 0; j < d; j++ {
		mat.Col(col, j, data)
		s.mean[j] = stat.Mean(col, nil)
		var ss float64
		for _, v := range col {
			dv := v - s.mean[j]
			ss += dv * dv
		}
		s.std[j] = math.Sqrt(ss / float64(n))
		if s.std[j] == 0 {
			// Constant feature: center it, leave the scale alone.
			s.std[j] = 1
		}
	}
	return s
}

// Transform returns a standardized copy of data.
func (s *Scaler) Transform(data *mat.Dense) *mat.Dense {
	n, d := data.Dims()
	out := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			out.Set(i, j, (data.At(i, j)-s.mean[j])/s.std[j])
		}
	}
	return out
}
