// Package neural trains a one-layer linear network with gorgonia's
// automatic differentiation and the Adam solver. It is a fourth producer
// of the same coefficient bundle the linear solvers compute analytically:
// the gradient here comes from the tape machine instead of the closed-form
// derivative, and the step size adapts per parameter.
package neural

import (
	G "gorgonia.org/gorgonia"
	T "gorgonia.org/tensor"

	"github.com/ndrean/linreg/core/model"
	"github.com/ndrean/linreg/linear"
	"github.com/ndrean/linreg/pkg/errors"
)

// Bundle is the trained parameter pair, named the way layer weights are:
// the kernel multiplies the input, the bias shifts it. For a line they are
// just (slope, intercept).
type Bundle struct {
	Kernel float64 `json:"kernel"`
	Bias   float64 `json:"bias"`
}

// Network is a single dense unit with identity activation and MSE loss,
// trained full-batch.
type Network struct {
	state *model.StateManager

	learnRate float64
	epochs    int
	stride    int

	bundle    Bundle
	finalCost float64
	history   linear.History
}

// Option configures a Network.
type Option func(*Network)

// WithLearnRate sets the Adam base step size.
func WithLearnRate(rate float64) Option {
	return func(n *Network) {
		n.learnRate = rate
	}
}

// WithEpochs sets the number of full-batch training passes.
func WithEpochs(epochs int) Option {
	return func(n *Network) {
		n.epochs = epochs
	}
}

// WithSnapshotStride sets how often a training snapshot is recorded.
func WithSnapshotStride(stride int) Option {
	return func(n *Network) {
		n.stride = stride
	}
}

// NewNetwork creates an untrained network. Defaults: learn rate 0.05,
// 2000 epochs, snapshots every 100th epoch.
func NewNetwork(options ...Option) *Network {
	n := &Network{
		state:     model.NewStateManager(),
		learnRate: 0.05,
		epochs:    2000,
		stride:    100,
	}

	for _, opt := range options {
		opt(n)
	}

	return n
}

// Fit trains the network on the dataset. The computation graph is
//
//	cost = mean((x*kernel + bias - y)²)
//
// differentiated by gorgonia; Adam applies the updates.
func (n *Network) Fit(x, y []float64) error {
	if len(x) == 0 {
		return errors.NewModelError("Network.Fit", "empty data", errors.ErrEmptyData)
	}
	if len(x) != len(y) {
		return errors.NewDimensionError("Network.Fit", len(x), len(y), 0)
	}
	if n.learnRate <= 0 {
		return errors.NewValueError("Network.Fit", "learning rate must be positive")
	}
	if n.epochs <= 0 {
		return errors.NewValueError("Network.Fit", "epoch budget must be positive")
	}
	if n.stride <= 0 {
		return errors.NewValueError("Network.Fit", "snapshot stride must be positive")
	}

	rows := len(x)
	xT := T.New(T.WithShape(rows, 1), T.WithBacking(append([]float64(nil), x...)))
	yT := T.New(T.WithShape(rows, 1), T.WithBacking(append([]float64(nil), y...)))

	g := G.NewGraph()
	xNode := G.NewMatrix(g, T.Float64, G.WithShape(rows, 1), G.WithName("x"))
	yNode := G.NewMatrix(g, T.Float64, G.WithShape(rows, 1), G.WithName("y"))
	kernel := G.NewMatrix(g, T.Float64, G.WithShape(1, 1), G.WithName("kernel"), G.WithInit(G.Zeroes()))
	bias := G.NewMatrix(g, T.Float64, G.WithShape(1, 1), G.WithName("bias"), G.WithInit(G.Zeroes()))

	pred, err := G.Mul(xNode, kernel)
	if err != nil {
		return errors.Wrap(err, "building prediction node")
	}
	pred, err = G.BroadcastAdd(pred, bias, nil, []byte{0})
	if err != nil {
		return errors.Wrap(err, "broadcasting bias")
	}

	diff, err := G.Sub(pred, yNode)
	if err != nil {
		return errors.Wrap(err, "building residual node")
	}
	sq, err := G.Square(diff)
	if err != nil {
		return errors.Wrap(err, "building squared residual node")
	}
	cost, err := G.Mean(sq)
	if err != nil {
		return errors.Wrap(err, "building cost node")
	}

	var costVal G.Value
	G.Read(cost, &costVal)

	if _, err := G.Grad(cost, kernel, bias); err != nil {
		return errors.Wrap(err, "building gradient nodes")
	}

	vm := G.NewTapeMachine(g, G.BindDualValues(kernel, bias))
	defer vm.Close()

	solver := G.NewAdamSolver(G.WithLearnRate(n.learnRate))
	params := G.NodesToValueGrads(G.Nodes{kernel, bias})

	n.history = n.history[:0]

	for epoch := 1; epoch <= n.epochs; epoch++ {
		if err := G.Let(xNode, xT); err != nil {
			return errors.Wrap(err, "binding inputs")
		}
		if err := G.Let(yNode, yT); err != nil {
			return errors.Wrap(err, "binding targets")
		}

		if err := vm.RunAll(); err != nil {
			return errors.Wrapf(err, "running tape machine at epoch %d", epoch)
		}
		if err := solver.Step(params); err != nil {
			return errors.Wrapf(err, "solver step at epoch %d", epoch)
		}

		c := scalarOf(costVal)
		if err := errors.CheckScalar("cost", c, epoch); err != nil {
			return err
		}
		n.finalCost = c

		if epoch%n.stride == 0 || epoch == n.epochs {
			n.history = append(n.history, linear.State{
				Iteration: epoch,
				Slope:     scalarOf(kernel.Value()),
				Intercept: scalarOf(bias.Value()),
				Cost:      c,
			})
		}

		vm.Reset()
	}

	n.bundle = Bundle{
		Kernel: scalarOf(kernel.Value()),
		Bias:   scalarOf(bias.Value()),
	}

	n.state.SetFitted()
	n.state.SetDimensions(1, rows)

	return nil
}

// Bundle returns the trained {kernel, bias} pair.
func (n *Network) Bundle() (Bundle, error) {
	if !n.state.IsFitted() {
		return Bundle{}, errors.NewNotFittedError("Network", "Bundle")
	}
	return n.bundle, nil
}

// Coefficients converts the bundle to the solvers' coefficient type so the
// four producers compare directly.
func (n *Network) Coefficients() (linear.Coefficients, error) {
	if !n.state.IsFitted() {
		return linear.Coefficients{}, errors.NewNotFittedError("Network", "Coefficients")
	}
	return linear.Coefficients{Slope: n.bundle.Kernel, Intercept: n.bundle.Bias}, nil
}

// Coef returns the coefficient vector, for parity with the other solvers.
func (n *Network) Coef() []float64 {
	if !n.state.IsFitted() {
		return nil
	}
	return []float64{n.bundle.Kernel}
}

// Intercept returns the trained bias.
func (n *Network) Intercept() float64 {
	return n.bundle.Bias
}

// FinalCost returns the loss after the last epoch.
func (n *Network) FinalCost() (float64, error) {
	if !n.state.IsFitted() {
		return 0, errors.NewNotFittedError("Network", "FinalCost")
	}
	return n.finalCost, nil
}

// History returns the training snapshots of the last Fit.
func (n *Network) History() linear.History {
	return n.history
}

// Predict evaluates the trained line at the given inputs.
func (n *Network) Predict(xs []float64) ([]float64, error) {
	if !n.state.IsFitted() {
		return nil, errors.NewNotFittedError("Network", "Predict")
	}
	coef := linear.Coefficients{Slope: n.bundle.Kernel, Intercept: n.bundle.Bias}
	return coef.Evaluate(xs), nil
}

// scalarOf extracts the single float64 held by a gorgonia value,
// whether it is backed by a scalar or a one-element tensor.
func scalarOf(v G.Value) float64 {
	switch data := v.Data().(type) {
	case float64:
		return data
	case []float64:
		return data[0]
	default:
		return 0
	}
}
