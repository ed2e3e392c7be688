// Package layer provides the layers a network is assembled from.
package layer

import (
	"fmt"

	"github.com/FlavioCFOliveira/ffnet/internal/initializers"
	"gonum.org/v1/gonum/mat"
)

// Layer is one differentiable stage of a feed-forward network.
//
// Backward and UpdateParams receive the same input that was passed to Forward
// together with the gradient of the loss with respect to the layer's output.
// Backward never mutates parameters; UpdateParams applies one gradient
// descent step in place. Inputs of the wrong length panic.
//
// A layer whose output width differs from its input width should implement
// Shaped, so width mismatches are reported when the network is assembled.
type Layer interface {
	Forward(x []float64) []float64
	Backward(x, outErr []float64) []float64
	UpdateParams(x, outErr []float64, lr float64)
}

// Shaped is implemented by layers with a declared input and output width.
type Shaped interface {
	InSize() int
	OutSize() int
}

// Parameterized is implemented by layers with trainable parameters.
type Parameterized interface {
	NumParams() int
	Params() []float64
	SetParams(params []float64)
}

// Dense is a fully connected (affine) layer: y = Wx + b.
type Dense struct {
	// Shape: [out, in]; W[j][i] connects input i to output j.
	weights *mat.Dense
	biases  *mat.VecDense
	outSize int
	inSize  int
}

// NewDense creates a dense layer with weights and biases drawn uniformly
// from [-1, 1).
func NewDense(in, out int) *Dense {
	return NewDenseFrom(in, out, initializers.Default())
}

// NewDenseFrom creates a dense layer whose parameters are drawn from src,
// weights row by row first, then biases.
func NewDenseFrom(in, out int, src initializers.Source) *Dense {
	if in <= 0 || out <= 0 {
		panic(fmt.Sprintf("NewDense: sizes must be positive, got in=%d out=%d", in, out))
	}

	weights := make([]float64, out*in)
	biases := make([]float64, out)
	initializers.Fill(weights, src)
	initializers.Fill(biases, src)

	return &Dense{
		weights: mat.NewDense(out, in, weights),
		biases:  mat.NewVecDense(out, biases),
		outSize: out,
		inSize:  in,
	}
}

func (d *Dense) checkLen(op, what string, v []float64, want int) {
	if len(v) != want {
		panic(fmt.Sprintf("Dense.%s: expected %d %s, got %d", op, want, what, len(v)))
	}
}

// Forward computes Wx + b.
func (d *Dense) Forward(x []float64) []float64 {
	d.checkLen("Forward", "inputs", x, d.inSize)

	out := mat.NewVecDense(d.outSize, nil)
	out.MulVec(d.weights, mat.NewVecDense(d.inSize, x))
	out.AddVec(out, d.biases)
	return out.RawVector().Data
}

// Backward computes W^T outErr. The map is linear, so x only has its
// length checked.
func (d *Dense) Backward(x, outErr []float64) []float64 {
	d.checkLen("Backward", "inputs", x, d.inSize)
	d.checkLen("Backward", "output errors", outErr, d.outSize)

	inErr := mat.NewVecDense(d.inSize, nil)
	inErr.MulVec(d.weights.T(), mat.NewVecDense(d.outSize, outErr))
	return inErr.RawVector().Data
}

// UpdateParams performs W -= lr * outErr x^T and b -= lr * outErr.
func (d *Dense) UpdateParams(x, outErr []float64, lr float64) {
	d.checkLen("UpdateParams", "inputs", x, d.inSize)
	d.checkLen("UpdateParams", "output errors", outErr, d.outSize)

	e := mat.NewVecDense(d.outSize, outErr)
	d.weights.RankOne(d.weights, -lr, e, mat.NewVecDense(d.inSize, x))
	d.biases.AddScaledVec(d.biases, -lr, e)
}

// NumParams returns the number of weights plus biases.
func (d *Dense) NumParams() int {
	return d.outSize*d.inSize + d.outSize
}

// Params returns all dense layer parameters flattened: weights row-major,
// then biases. The slice is a copy.
func (d *Dense) Params() []float64 {
	params := make([]float64, 0, d.NumParams())
	params = append(params, d.weights.RawMatrix().Data...)
	params = append(params, d.biases.RawVector().Data...)
	return params
}

// SetParams updates weights and biases from a flattened slice (in-place).
func (d *Dense) SetParams(params []float64) {
	d.checkLen("SetParams", "parameters", params, d.NumParams())

	nw := d.outSize * d.inSize
	copy(d.weights.RawMatrix().Data, params[:nw])
	copy(d.biases.RawVector().Data, params[nw:])
}

// SetWeight sets a single weight at (row, col).
func (d *Dense) SetWeight(row, col int, val float64) {
	d.weights.Set(row, col, val)
}

// SetBias sets a single bias.
func (d *Dense) SetBias(idx int, val float64) {
	d.biases.SetVec(idx, val)
}

// Weight gets a single weight at (row, col).
func (d *Dense) Weight(row, col int) float64 {
	return d.weights.At(row, col)
}

// Bias gets a single bias.
func (d *Dense) Bias(idx int) float64 {
	return d.biases.AtVec(idx)
}

// InSize returns the input size of the layer.
func (d *Dense) InSize() int {
	return d.inSize
}

// OutSize returns the output size of the layer.
func (d *Dense) OutSize() int {
	return d.outSize
}
