package linear

import (
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// benchmarkData builds a reproducible rows×cols problem with a known line
// and a little noise.
func benchmarkData(rows, cols int) (*mat.Dense, *mat.Dense) {
	rng := rand.New(rand.NewPCG(42, 42))

	X := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			X.Set(i, j, rng.Float64()*2.0-1.0)
		}
	}

	trueWeights := make([]float64, cols)
	for j := 0; j < cols; j++ {
		trueWeights[j] = float64(j+1) * 0.5
	}

	y := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		sum := 1.0
		for j := 0; j < cols; j++ {
			sum += X.At(i, j) * trueWeights[j]
		}
		sum += (rng.Float64() - 0.5) * 0.1
		y.Set(i, 0, sum)
	}

	return X, y
}

func BenchmarkRegressionFit(b *testing.B) {
	sizes := []struct {
		name string
		rows int
		cols int
	}{
		{"Small_100x1", 100, 1},
		{"Medium_1000x1", 1000, 1},
		{"Medium_2000x10", 2000, 10},
		{"Large_10000x20", 10000, 20},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, y := benchmarkData(size.rows, size.cols)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				lr := NewRegression()
				if err := lr.Fit(X, y); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkGradientDescentFit(b *testing.B) {
	x := make([]float64, 100)
	y := make([]float64, 100)
	rng := rand.New(rand.NewPCG(7, 7))
	for i := range x {
		x[i] = float64(i) / 100
		y[i] = 2*x[i] + 1 + (rng.Float64()-0.5)*0.1
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gd := NewGradientDescent(WithInit(0, 0), WithLearnRate(0.1), WithEpochs(1000))
		if err := gd.Fit(x, y); err != nil {
			b.Fatal(err)
		}
	}
}
