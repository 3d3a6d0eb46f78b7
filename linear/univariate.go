package linear

import (
	"gonum.org/v1/gonum/stat"

	"github.com/ndrean/linreg/core/model"
	"github.com/ndrean/linreg/pkg/errors"
)

// Univariate fits a single-feature line directly from the data's
// statistics:
//
//	slope     = cov(x, y) / var(x)
//	intercept = mean(y) - slope*mean(x)
//
// This is mathematically the normal-equation solution for p=1, computed
// in one pass over the data instead of a matrix inversion.
type Univariate struct {
	state *model.StateManager

	coef     Coefficients
	rSquared float64
}

// NewUnivariate creates an unfitted statistical solver.
func NewUnivariate() *Univariate {
	return &Univariate{
		state: model.NewStateManager(),
	}
}

// Fit computes slope and intercept from covariance and variance.
//
// All-identical x values make var(x) zero and the slope undefined; that is
// reported as ErrDegenerateInput rather than propagated as NaN.
func (u *Univariate) Fit(x, y []float64) error {
	if len(x) == 0 {
		return errors.NewModelError("Univariate.Fit", "empty data", errors.ErrEmptyData)
	}
	if len(x) != len(y) {
		return errors.NewDimensionError("Univariate.Fit", len(x), len(y), 0)
	}
	if len(x) < 2 {
		return errors.NewValueError("Univariate.Fit", "need at least 2 samples")
	}

	// The sample (1/(n-1)) and population (1/n) conventions cancel in the
	// cov/var ratio, so stat's sample versions give the same line.
	varX := stat.Variance(x, nil)
	if varX == 0 {
		return errors.NewDegenerateInputError("Univariate.Fit", "all x values are identical")
	}

	cov := stat.Covariance(x, y, nil)
	slope := cov / varX
	intercept := stat.Mean(y, nil) - slope*stat.Mean(x, nil)

	u.coef = Coefficients{Slope: slope, Intercept: intercept}

	// Goodness-of-fit diagnostic cov² / (var(x)·var(y)), in [0, 1].
	// A zero-variance y means the data is a horizontal line, which the
	// model explains perfectly.
	varY := stat.Variance(y, nil)
	if varY == 0 {
		u.rSquared = 1
	} else {
		u.rSquared = (cov * cov) / (varX * varY)
	}

	u.state.SetFitted()
	u.state.SetDimensions(1, len(x))

	return nil
}

// Coefficients returns the fitted line.
func (u *Univariate) Coefficients() (Coefficients, error) {
	if !u.state.IsFitted() {
		return Coefficients{}, errors.NewNotFittedError("Univariate", "Coefficients")
	}
	return u.coef, nil
}

// Slope returns the fitted slope.
func (u *Univariate) Slope() float64 {
	return u.coef.Slope
}

// Intercept returns the fitted intercept.
func (u *Univariate) Intercept() float64 {
	return u.coef.Intercept
}

// Coef returns the coefficient vector, for parity with the other solvers.
func (u *Univariate) Coef() []float64 {
	if !u.state.IsFitted() {
		return nil
	}
	return []float64{u.coef.Slope}
}

// RSquared returns the coefficient-of-determination diagnostic.
func (u *Univariate) RSquared() (float64, error) {
	if !u.state.IsFitted() {
		return 0, errors.NewNotFittedError("Univariate", "RSquared")
	}
	return u.rSquared, nil
}

// Predict evaluates the fitted line at the given inputs.
func (u *Univariate) Predict(xs []float64) ([]float64, error) {
	if !u.state.IsFitted() {
		return nil, errors.NewNotFittedError("Univariate", "Predict")
	}
	return u.coef.Evaluate(xs), nil
}
