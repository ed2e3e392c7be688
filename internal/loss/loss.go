// Package loss provides loss functions and their gradients.
package loss

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// BackwardInPlacer is an optional interface for loss functions that support
// in-place gradient computation to avoid allocations.
type BackwardInPlacer interface {
	BackwardInPlace(yPred, yTrue, grad []float64)
}

// Loss is a loss function with derivative.
type Loss interface {
	// Forward computes the loss between predicted and true values.
	Forward(yPred, yTrue []float64) float64

	// Backward computes the gradient of the loss w.r.t. prediction.
	Backward(yPred, yTrue []float64) []float64
}

// Func adapts a pair of plain functions to Loss. D must be the gradient of F.
type Func struct {
	F func(yPred, yTrue []float64) float64
	D func(yPred, yTrue []float64) []float64
}

// New returns a Loss built from fn and its gradient deriv.
func New(fn func(yPred, yTrue []float64) float64, deriv func(yPred, yTrue []float64) []float64) Func {
	if fn == nil || deriv == nil {
		panic("loss.New: function and derivative must be non-nil")
	}
	return Func{F: fn, D: deriv}
}

func (f Func) Forward(yPred, yTrue []float64) float64 {
	checkLen("Func", yPred, yTrue)
	return f.F(yPred, yTrue)
}

func (f Func) Backward(yPred, yTrue []float64) []float64 {
	checkLen("Func", yPred, yTrue)
	return f.D(yPred, yTrue)
}

func checkLen(name string, yPred, yTrue []float64) {
	if len(yPred) != len(yTrue) {
		panic(name + ": prediction and target must have same length")
	}
}

// MSE (Mean Squared Error) loss.
type MSE struct{}

// Forward computes mean squared error: (1/n) * sum((y_pred - y_true)^2)
func (m MSE) Forward(yPred, yTrue []float64) float64 {
	checkLen("MSE", yPred, yTrue)

	diff := make([]float64, len(yPred))
	floats.SubTo(diff, yPred, yTrue)
	return floats.Dot(diff, diff) / float64(len(diff))
}

// Backward computes gradient: dL/dy_pred = (2/n) * (y_pred - y_true)
func (m MSE) Backward(yPred, yTrue []float64) []float64 {
	grad := make([]float64, len(yPred))
	m.BackwardInPlace(yPred, yTrue, grad)
	return grad
}

// BackwardInPlace computes gradient and stores it in the grad slice.
func (m MSE) BackwardInPlace(yPred, yTrue, grad []float64) {
	checkLen("MSE", yPred, yTrue)
	checkLen("MSE", yPred, grad)

	floats.SubTo(grad, yPred, yTrue)
	floats.Scale(2/float64(len(grad)), grad)
}

// L1Loss (Mean Absolute Error) loss.
type L1Loss struct{}

// Forward computes mean absolute error: (1/n) * sum(|y_pred - y_true|)
func (l L1Loss) Forward(yPred, yTrue []float64) float64 {
	checkLen("L1Loss", yPred, yTrue)
	return floats.Distance(yPred, yTrue, 1) / float64(len(yPred))
}

// Backward computes gradient for L1 loss: dL/dy_pred = (1/n) * sign(y_pred - y_true)
func (l L1Loss) Backward(yPred, yTrue []float64) []float64 {
	grad := make([]float64, len(yPred))
	l.BackwardInPlace(yPred, yTrue, grad)
	return grad
}

// BackwardInPlace computes gradient and stores it in the grad slice.
func (l L1Loss) BackwardInPlace(yPred, yTrue, grad []float64) {
	checkLen("L1Loss", yPred, yTrue)
	checkLen("L1Loss", yPred, grad)

	factor := 1.0 / float64(len(grad))
	for i := range grad {
		diff := yPred[i] - yTrue[i]
		switch {
		case diff > 0:
			grad[i] = factor
		case diff < 0:
			grad[i] = -factor
		default:
			grad[i] = 0
		}
	}
}

// Huber loss for robust regression.
type Huber struct {
	Delta float64 // Threshold for quadratic/linear transition
}

// NewHuber creates a Huber loss with the given delta.
func NewHuber(delta float64) *Huber {
	return &Huber{Delta: delta}
}

// Forward computes (1/n) * sum of 0.5*d^2 for |d| <= delta, else
// delta*(|d| - 0.5*delta).
func (h Huber) Forward(yPred, yTrue []float64) float64 {
	checkLen("Huber", yPred, yTrue)

	var sum float64
	for i := range yPred {
		diff := math.Abs(yPred[i] - yTrue[i])
		if diff <= h.Delta {
			sum += 0.5 * diff * diff
		} else {
			sum += h.Delta * (diff - 0.5*h.Delta)
		}
	}
	return sum / float64(len(yPred))
}

// Backward computes gradient for Huber loss.
func (h Huber) Backward(yPred, yTrue []float64) []float64 {
	grad := make([]float64, len(yPred))
	h.BackwardInPlace(yPred, yTrue, grad)
	return grad
}

// BackwardInPlace computes gradient and stores it in the grad slice.
func (h Huber) BackwardInPlace(yPred, yTrue, grad []float64) {
	checkLen("Huber", yPred, yTrue)
	checkLen("Huber", yPred, grad)

	n := float64(len(grad))
	for i := range grad {
		diff := yPred[i] - yTrue[i]
		if math.Abs(diff) <= h.Delta {
			grad[i] = diff / n
		} else {
			grad[i] = h.Delta * math.Copysign(1, diff) / n
		}
	}
}

// Name returns a short name for the stock losses, or "custom".
func Name(l Loss) string {
	switch l.(type) {
	case MSE, *MSE:
		return "mse"
	case L1Loss, *L1Loss:
		return "l1"
	case Huber, *Huber:
		return "huber"
	default:
		return "custom"
	}
}
