// Package dataset generates the synthetic datasets the solvers are
// compared on and derives design matrices from them.
package dataset

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ndrean/linreg/pkg/errors"
)

// Sample is one observation: an input x and the observed output y.
// Immutable once generated.
type Sample struct {
	X float64
	Y float64
}

// Dataset is an ordered, fixed-size collection of samples, kept as
// parallel columns so the solvers can consume the slices directly.
type Dataset struct {
	X []float64
	Y []float64
}

// Len returns the number of samples.
func (d Dataset) Len() int {
	return len(d.X)
}

// Sample returns the i-th observation.
func (d Dataset) Sample(i int) Sample {
	return Sample{X: d.X[i], Y: d.Y[i]}
}

// Features returns the inputs as an n×1 matrix for the closed-form path.
func (d Dataset) Features() *mat.Dense {
	return mat.NewDense(len(d.X), 1, append([]float64(nil), d.X...))
}

// Targets returns the outputs as an n×1 column vector.
func (d Dataset) Targets() *mat.Dense {
	return mat.NewDense(len(d.Y), 1, append([]float64(nil), d.Y...))
}

// Generator produces datasets of the form y = slope*x + intercept + noise
// with x ranging over 1..n and noise drawn from Uniform[0, scale).
//
// Generation consumes entropy, so reproducible runs must supply a seed or
// a source. Two generators built with the same seed produce identical
// datasets.
type Generator struct {
	slope      float64
	intercept  float64
	noiseScale float64
	src        rand.Source
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithNoiseScale sets the upper bound k of the Uniform[0, k) noise
// distribution. Zero disables noise, which is how the exact-line test
// fixtures are built.
func WithNoiseScale(scale float64) GeneratorOption {
	return func(g *Generator) {
		g.noiseScale = scale
	}
}

// WithLine sets the true slope and intercept of the generated line.
func WithLine(slope, intercept float64) GeneratorOption {
	return func(g *Generator) {
		g.slope = slope
		g.intercept = intercept
	}
}

// WithSeed seeds the generator's random source for reproducible datasets.
func WithSeed(seed uint64) GeneratorOption {
	return func(g *Generator) {
		g.src = rand.NewPCG(seed, seed)
	}
}

// WithSource injects a random source directly.
func WithSource(src rand.Source) GeneratorOption {
	return func(g *Generator) {
		g.src = src
	}
}

// NewGenerator creates a Generator for y = x + Uniform[0, 1) by default.
func NewGenerator(options ...GeneratorOption) *Generator {
	g := &Generator{
		slope:      1.0,
		intercept:  0.0,
		noiseScale: 1.0,
	}

	for _, opt := range options {
		opt(g)
	}

	return g
}

// Generate produces a dataset of n samples with x_i = i+1.
func (g *Generator) Generate(n int) (Dataset, error) {
	if n <= 0 {
		return Dataset{}, errors.NewValueError("Generator.Generate", "sample count must be positive")
	}

	ds := Dataset{
		X: make([]float64, n),
		Y: make([]float64, n),
	}

	var draw func() float64
	if g.noiseScale > 0 {
		noise := distuv.Uniform{Min: 0, Max: g.noiseScale, Src: g.src}
		draw = noise.Rand
	} else {
		draw = func() float64 { return 0 }
	}

	for i := 0; i < n; i++ {
		x := float64(i + 1)
		ds.X[i] = x
		ds.Y[i] = g.slope*x + g.intercept + draw()
	}

	return ds, nil
}
