// Package metrics provides regression diagnostics shared by the solvers.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ndrean/linreg/pkg/errors"
)

// MSE computes the mean squared error (1/n) * Σ(yTrue - yPred)².
// This is also the cost function gradient descent minimizes.
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MSE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MSE", n, yPred.Len(), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}

	return sum / float64(n), nil
}

// RMSE computes the root mean squared error.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE computes the mean absolute error.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MAE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MAE", n, yPred.Len(), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}

	return sum / float64(n), nil
}

// R2 computes the coefficient of determination 1 - RSS/TSS.
// Fails when yTrue has zero variance, since the ratio is undefined.
func R2(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("R2", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("R2", n, yPred.Len(), 0)
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		yt := yTrue.AtVec(i)
		yp := yPred.AtVec(i)
		tss += (yt - yMean) * (yt - yMean)
		rss += (yt - yp) * (yt - yp)
	}

	if tss == 0 {
		return 0, errors.NewDegenerateInputError("R2", "zero variance in y_true")
	}

	return 1 - rss/tss, nil
}

// MSEMatrix computes MSE for n×1 matrix inputs.
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	yTrueVec, err := columnVector("MSEMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	yPredVec, err := columnVector("MSEMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return MSE(yTrueVec, yPredVec)
}

// R2Matrix computes R² for n×1 matrix inputs.
func R2Matrix(yTrue, yPred mat.Matrix) (float64, error) {
	yTrueVec, err := columnVector("R2Matrix", yTrue)
	if err != nil {
		return 0, err
	}
	yPredVec, err := columnVector("R2Matrix", yPred)
	if err != nil {
		return 0, err
	}
	return R2(yTrueVec, yPredVec)
}

func columnVector(op string, m mat.Matrix) (*mat.VecDense, error) {
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewValueError(op, "empty matrix")
	}
	if c != 1 {
		return nil, errors.NewValueError(op, "must be a column vector (n×1 matrix)")
	}

	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v, nil
}
