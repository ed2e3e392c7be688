// Package ffnet is the public entry point of the engine: it re-exports the
// types and constructors needed to assemble, train and query a network.
package ffnet

import (
	"log"

	"github.com/FlavioCFOliveira/ffnet/internal/activations"
	"github.com/FlavioCFOliveira/ffnet/internal/initializers"
	"github.com/FlavioCFOliveira/ffnet/internal/layer"
	"github.com/FlavioCFOliveira/ffnet/internal/loss"
	"github.com/FlavioCFOliveira/ffnet/internal/net"
)

// Re-export common types for easier access
type (
	Network     = net.Network
	Dataset     = net.Dataset
	Callback    = net.Callback
	Layer       = layer.Layer
	Loss        = loss.Loss
	Activation  = activations.Activation
	Initializer = initializers.Source
)

// Errors
var (
	ErrDimensionMismatch = net.ErrDimensionMismatch
	ErrEmptyDataset      = net.ErrEmptyDataset
	ErrInvalidNetwork    = net.ErrInvalidNetwork
	ErrInvalidArgument   = net.ErrInvalidArgument
)

// New assembles a network from layers and a loss.
func New(l Loss, layers ...Layer) (*Network, error) {
	return net.New(layers, l)
}

// Activations
var (
	ReLU    = activations.ReLU{}
	Tanh    = activations.Tanh{}
	Sigmoid = activations.Sigmoid{}
	Linear  = activations.Linear{}
)

func LeakyReLU(alpha float64) Activation {
	return activations.NewLeakyReLU(alpha)
}

// Layers
func Dense(in, out int) Layer {
	return layer.NewDense(in, out)
}

func DenseFrom(in, out int, init Initializer) Layer {
	return layer.NewDenseFrom(in, out, init)
}

func ActivationLayer(act Activation) Layer {
	return layer.NewActivation(act)
}

func ActivationFunc(fn, deriv func(float64) float64) Layer {
	return layer.NewActivationFunc(fn, deriv)
}

// Initializers
func Uniform(lower, upper float64) *initializers.Uniform {
	return initializers.NewUniform(lower, upper)
}

func Seeded(seed uint64) Initializer {
	return initializers.Default().Seed(seed)
}

// Losses
var (
	MSE    = loss.MSE{}
	L1Loss = loss.L1Loss{}
)

func Huber(delta float64) Loss {
	return loss.NewHuber(delta)
}

func LossFunc(fn func(yPred, yTrue []float64) float64, deriv func(yPred, yTrue []float64) []float64) Loss {
	return loss.New(fn, deriv)
}

// Callbacks
func Logger(interval int) Callback {
	return net.NewLogger(interval, log.Default())
}

func CSVLogger(filename string, appendMode bool) Callback {
	return net.NewCSVLogger(filename, appendMode)
}

func EpochFunc(fn func(epoch int, loss float64)) Callback {
	return net.EpochFunc(fn)
}

// Data
func LoadCSV(filename string, labelCols []int, hasHeader bool) (*Dataset, error) {
	return net.LoadCSV(filename, labelCols, hasHeader)
}
