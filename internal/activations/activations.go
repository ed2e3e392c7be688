// Package activations provides scalar activation functions and their derivatives.
//
// Every derivative is expressed in terms of the pre-activation input x, never
// the activated output f(x). Layers pass the value they fed into Activate.
package activations

import "math"

// Activation is an activation function with derivative.
type Activation interface {
	// Activate computes f(x)
	Activate(x float64) float64

	// Derivative computes f'(x) at the pre-activation input x
	Derivative(x float64) float64
}

// Func adapts a pair of plain functions to Activation.
// The functions must be pure; a Func carries no state between calls.
type Func struct {
	F func(x float64) float64
	D func(x float64) float64
}

// New returns an Activation built from fn and its derivative deriv.
func New(fn, deriv func(x float64) float64) Func {
	if fn == nil || deriv == nil {
		panic("activations.New: function and derivative must be non-nil")
	}
	return Func{F: fn, D: deriv}
}

// Activate calls F.
func (f Func) Activate(x float64) float64 {
	return f.F(x)
}

// Derivative calls D.
func (f Func) Derivative(x float64) float64 {
	return f.D(x)
}

// ReLU activation function.
type ReLU struct{}

// Activate computes max(0, x)
func (r ReLU) Activate(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// Derivative returns 1 if x > 0, else 0. The boundary x = 0 yields 0.
func (r ReLU) Derivative(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

// Tanh activation function.
type Tanh struct{}

// Activate computes tanh(x)
func (t Tanh) Activate(x float64) float64 {
	return math.Tanh(x)
}

// Derivative computes 1 - tanh(x)^2
func (t Tanh) Derivative(x float64) float64 {
	tanhX := math.Tanh(x)
	return 1 - tanhX*tanhX
}

// Sigmoid activation function.
type Sigmoid struct{}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Activate computes sigmoid(x)
func (s Sigmoid) Activate(x float64) float64 {
	return sigmoid(x)
}

// Derivative computes sigmoid(x) * (1 - sigmoid(x))
func (s Sigmoid) Derivative(x float64) float64 {
	sigma := sigmoid(x)
	return sigma * (1 - sigma)
}

// Linear is the identity activation.
type Linear struct{}

func (l Linear) Activate(x float64) float64 {
	return x
}

func (l Linear) Derivative(x float64) float64 {
	return 1
}

// LeakyReLU lets a small slope through for non-positive inputs.
type LeakyReLU struct {
	Alpha float64 // Slope for x <= 0
}

// NewLeakyReLU creates a LeakyReLU with the given alpha value.
func NewLeakyReLU(alpha float64) *LeakyReLU {
	return &LeakyReLU{Alpha: alpha}
}

// Activate computes x if x > 0, else alpha*x
func (l *LeakyReLU) Activate(x float64) float64 {
	if x > 0 {
		return x
	}
	return l.Alpha * x
}

// Derivative returns 1 if x > 0, else alpha
func (l *LeakyReLU) Derivative(x float64) float64 {
	if x > 0 {
		return 1
	}
	return l.Alpha
}

// Name returns a short lowercase name for the stock activations, or "custom".
func Name(act Activation) string {
	switch act.(type) {
	case ReLU, *ReLU:
		return "relu"
	case Tanh, *Tanh:
		return "tanh"
	case Sigmoid, *Sigmoid:
		return "sigmoid"
	case Linear, *Linear:
		return "linear"
	case *LeakyReLU:
		return "leakyrelu"
	default:
		return "custom"
	}
}

// Parse returns the stock activation named by s.
func Parse(s string) (Activation, bool) {
	switch s {
	case "relu":
		return ReLU{}, true
	case "tanh":
		return Tanh{}, true
	case "sigmoid":
		return Sigmoid{}, true
	case "linear", "identity":
		return Linear{}, true
	case "leakyrelu":
		return NewLeakyReLU(0.01), true
	}
	return nil, false
}
