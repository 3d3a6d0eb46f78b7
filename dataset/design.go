package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ndrean/linreg/core/parallel"
	"github.com/ndrean/linreg/pkg/errors"
)

// Row count below which the ones-column prepend runs sequentially.
const parallelThreshold = 1000

// DesignMatrix builds the n×(p+1) design matrix for X by prepending a
// constant ones column for the intercept term. The result is a fresh
// matrix; X is read only.
func DesignMatrix(X mat.Matrix) (*mat.Dense, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewModelError("DesignMatrix", "empty data", errors.ErrEmptyData)
	}

	design := mat.NewDense(r, c+1, nil)

	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			design.Set(i, 0, 1.0)
			for j := 0; j < c; j++ {
				design.Set(i, j+1, X.At(i, j))
			}
		}
	})

	return design, nil
}
