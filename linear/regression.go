// Package linear implements three independent linear-regression solvers:
// the normal equations (Regression), the covariance/variance closed form
// (Univariate) and batch gradient descent (GradientDescent). All three are
// comparable on the same dataset and agree on non-degenerate univariate
// input up to floating-point tolerance.
package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ndrean/linreg/core/model"
	"github.com/ndrean/linreg/dataset"
	"github.com/ndrean/linreg/metrics"
	"github.com/ndrean/linreg/pkg/errors"
)

// Regression is an ordinary-least-squares model solved in closed form via
// the normal equations W = (X^T*X)^(-1) * X^T*y. It handles any number of
// features; the intercept comes from the design matrix's ones column.
//
// The inversion costs O((p+1)^3) and the matrix products O(n*(p+1)^2), so
// for small fixed p the solve is linear in the sample count.
type Regression struct {
	state *model.StateManager

	weights   *mat.VecDense // coefficients, one per feature
	intercept float64
	nFeatures int
}

// NewRegression creates an unfitted closed-form solver.
func NewRegression() *Regression {
	return &Regression{
		state: model.NewStateManager(),
	}
}

// Fit solves the normal equations for X (n×p) and y (n×1).
//
// A singular Gram matrix (collinear features, or n < p+1) is a structural
// property of the input: it is returned as ErrSingularMatrix and never
// retried here.
func (r *Regression) Fit(X, y mat.Matrix) error {
	rows, cols := X.Dims()
	yRows, yCols := y.Dims()

	if rows == 0 || cols == 0 {
		return errors.NewModelError("Regression.Fit", "empty data", errors.ErrEmptyData)
	}
	if yRows != rows {
		return errors.NewDimensionError("Regression.Fit", rows, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError("Regression.Fit", "y must be a column vector")
	}

	r.nFeatures = cols

	design, err := dataset.DesignMatrix(X)
	if err != nil {
		return err
	}

	var xT mat.Dense
	xT.CloneFrom(design.T())

	// Gram matrix X^T*X, (p+1)×(p+1).
	var gram mat.Dense
	gram.Mul(&xT, design)

	var gramInv mat.Dense
	if err := gramInv.Inverse(&gram); err != nil {
		return errors.NewModelError("Regression.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	yVec := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	var xTy mat.VecDense
	xTy.MulVec(&xT, yVec)

	weights := mat.NewVecDense(cols+1, nil)
	weights.MulVec(&gramInv, &xTy)

	r.intercept = weights.AtVec(0)
	r.weights = mat.NewVecDense(cols, nil)
	for i := 0; i < cols; i++ {
		r.weights.SetVec(i, weights.AtVec(i+1))
	}

	r.state.SetFitted()
	r.state.SetDimensions(cols, rows)

	return nil
}

// Predict returns X*W + intercept for each row of X.
func (r *Regression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !r.state.IsFitted() {
		return nil, errors.NewNotFittedError("Regression", "Predict")
	}

	rows, cols := X.Dims()
	if cols != r.nFeatures {
		return nil, errors.NewDimensionError("Regression.Predict", r.nFeatures, cols, 1)
	}

	predictions := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		pred := r.intercept
		for j := 0; j < cols; j++ {
			pred += X.At(i, j) * r.weights.AtVec(j)
		}
		predictions.Set(i, 0, pred)
	}

	return predictions, nil
}

// Score returns the coefficient of determination R² on the given data.
func (r *Regression) Score(X, y mat.Matrix) (float64, error) {
	if !r.state.IsFitted() {
		return 0, errors.NewNotFittedError("Regression", "Score")
	}

	yPred, err := r.Predict(X)
	if err != nil {
		return 0, err
	}

	return metrics.R2Matrix(y, yPred)
}

// Coef returns a copy of the learned weight coefficients.
func (r *Regression) Coef() []float64 {
	if r.weights == nil {
		return nil
	}
	coef := make([]float64, r.weights.Len())
	for i := 0; i < r.weights.Len(); i++ {
		coef[i] = r.weights.AtVec(i)
	}
	return coef
}

// Intercept returns the learned intercept.
func (r *Regression) Intercept() float64 {
	if !r.state.IsFitted() {
		return 0
	}
	return r.intercept
}

// Coefficients returns the fitted line for the univariate case.
func (r *Regression) Coefficients() (Coefficients, error) {
	if !r.state.IsFitted() {
		return Coefficients{}, errors.NewNotFittedError("Regression", "Coefficients")
	}
	if r.nFeatures != 1 {
		return Coefficients{}, errors.NewValueError("Regression.Coefficients", "model has more than one feature")
	}
	return Coefficients{Slope: r.weights.AtVec(0), Intercept: r.intercept}, nil
}

// ExportWeights returns a portable weight bundle.
func (r *Regression) ExportWeights() (*model.ModelWeights, error) {
	if !r.state.IsFitted() {
		return nil, errors.NewNotFittedError("Regression", "ExportWeights")
	}

	nFeatures, nSamples := r.state.GetDimensions()
	weights := &model.ModelWeights{
		ModelType:    "Regression",
		Coefficients: r.Coef(),
		Intercept:    r.intercept,
		Metadata: map[string]interface{}{
			"n_features": nFeatures,
			"n_samples":  nSamples,
		},
	}
	weights.Seal()

	return weights, nil
}

// ImportWeights restores a previously exported weight bundle.
func (r *Regression) ImportWeights(weights *model.ModelWeights) error {
	if weights == nil {
		return errors.NewValueError("Regression.ImportWeights", "weights cannot be nil")
	}
	if weights.ModelType != "Regression" {
		return errors.Newf("model type mismatch: expected Regression, got %s", weights.ModelType)
	}
	if err := weights.Validate(); err != nil {
		return errors.Wrap(err, "invalid weights")
	}

	r.nFeatures = len(weights.Coefficients)
	r.weights = mat.NewVecDense(r.nFeatures, append([]float64(nil), weights.Coefficients...))
	r.intercept = weights.Intercept

	r.state.SetFitted()
	r.state.SetDimensions(r.nFeatures, 0)

	return nil
}
