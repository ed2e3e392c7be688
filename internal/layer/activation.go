package layer

import (
	"fmt"

	"github.com/FlavioCFOliveira/ffnet/internal/activations"
)

// Activation applies a scalar function to every element of its input.
// It has no trainable parameters and accepts inputs of any width.
type Activation struct {
	act activations.Activation
}

// NewActivation creates an elementwise activation layer.
func NewActivation(act activations.Activation) *Activation {
	if act == nil {
		panic("NewActivation: activation must be non-nil")
	}
	return &Activation{act: act}
}

// NewActivationFunc creates an elementwise activation layer from a function
// and its derivative, both taking the pre-activation input.
func NewActivationFunc(fn, deriv func(float64) float64) *Activation {
	return NewActivation(activations.New(fn, deriv))
}

// Forward computes f(x[k]) for every k.
func (a *Activation) Forward(x []float64) []float64 {
	out := make([]float64, len(x))
	for k, v := range x {
		out[k] = a.act.Activate(v)
	}
	return out
}

// Backward computes f'(x[k]) * outErr[k], with f' evaluated at the
// pre-activation input.
func (a *Activation) Backward(x, outErr []float64) []float64 {
	if len(x) != len(outErr) {
		panic(fmt.Sprintf("Activation.Backward: %d inputs but %d output errors", len(x), len(outErr)))
	}

	inErr := make([]float64, len(x))
	for k, v := range x {
		inErr[k] = a.act.Derivative(v) * outErr[k]
	}
	return inErr
}

// UpdateParams is a no-op.
func (a *Activation) UpdateParams(x, outErr []float64, lr float64) {}

// Func returns the wrapped activation function.
func (a *Activation) Func() activations.Activation {
	return a.act
}
