// Package linreg fits a line to noisy points three independent ways and
// lets you compare the results on the same dataset.
//
// The three solvers are:
//
//   - linear.Regression: ordinary least squares via the normal equations
//     (works for any number of features)
//   - linear.Univariate: the covariance/variance closed form for the
//     single-feature case
//   - linear.GradientDescent: iterative minimization of mean squared
//     error with convergence bookkeeping
//
// A fourth producer of the same coefficient bundle lives in the neural
// package: a one-layer network trained with gorgonia's automatic
// differentiation and the Adam solver.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/ndrean/linreg/dataset"
//	    "github.com/ndrean/linreg/linear"
//	)
//
//	func main() {
//	    gen := dataset.NewGenerator(dataset.WithSeed(42))
//	    ds, err := gen.Generate(100)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    uni := linear.NewUnivariate()
//	    if err := uni.Fit(ds.X, ds.Y); err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("slope=%.4f intercept=%.4f\n", uni.Slope(), uni.Intercept())
//	}
//
// The dataset package generates reproducible synthetic data, metrics
// provides the usual regression diagnostics, and plotting renders
// scatter/fit/convergence charts with gonum/plot.
package linreg
