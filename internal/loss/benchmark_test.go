package loss

import (
	"testing"

	"golang.org/x/exp/rand"
)

func benchmarkLoss(b *testing.B, l Loss) {
	yPred := make([]float64, 100)
	yTrue := make([]float64, 100)
	for i := range yPred {
		yPred[i] = rand.Float64()
		yTrue[i] = rand.Float64()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = l.Forward(yPred, yTrue)
		_ = l.Backward(yPred, yTrue)
	}
}

func BenchmarkMSE(b *testing.B) {
	benchmarkLoss(b, MSE{})
}

func BenchmarkL1Loss(b *testing.B) {
	benchmarkLoss(b, L1Loss{})
}

func BenchmarkHuber(b *testing.B) {
	benchmarkLoss(b, NewHuber(1))
}
