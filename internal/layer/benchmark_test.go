package layer

import (
	"testing"

	"github.com/FlavioCFOliveira/ffnet/internal/activations"
	"github.com/FlavioCFOliveira/ffnet/internal/initializers"
)

func randomVec(n int) []float64 {
	v := make([]float64, n)
	initializers.Fill(v, initializers.Default().Seed(1))
	return v
}

// BenchmarkDenseForward benchmarks the forward pass of a dense layer.
func BenchmarkDenseForward(b *testing.B) {
	layer := NewDense(784, 256)
	input := randomVec(784)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		layer.Forward(input)
	}
}

// BenchmarkDenseBackward benchmarks the backward pass of a dense layer.
func BenchmarkDenseBackward(b *testing.B) {
	layer := NewDense(784, 256)
	input := randomVec(784)
	grad := randomVec(256)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		layer.Backward(input, grad)
	}
}

// BenchmarkDenseFull benchmarks forward, backward and update for one sample.
func BenchmarkDenseFull(b *testing.B) {
	layer := NewDense(784, 256)
	input := randomVec(784)
	grad := randomVec(256)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		layer.Forward(input)
		layer.Backward(input, grad)
		layer.UpdateParams(input, grad, 1e-6)
	}
}

func BenchmarkActivationTanh(b *testing.B) {
	layer := NewActivation(activations.Tanh{})
	input := randomVec(1024)
	grad := randomVec(1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		layer.Forward(input)
		layer.Backward(input, grad)
	}
}
