// Package initializers supplies the scalars used to fill freshly built layer
// parameters.
package initializers

import (
	"sync/atomic"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Source generates one initial parameter value per call.
type Source interface {
	Gen() float64
}

// Uniform draws values uniformly from [lower, upper).
type Uniform struct {
	dist distuv.Uniform
}

// instances counts clock-seeded generators so that two created within the
// same clock tick still differ.
var instances atomic.Uint64

func clockSeed() uint64 {
	return uint64(time.Now().UnixNano()) ^ instances.Add(1)*0x9e3779b97f4a7c15
}

// NewUniform returns a Uniform over [lower, upper) with its own generator
// seeded from the clock, so every run draws different values. Use Seed for a
// reproducible stream.
func NewUniform(lower, upper float64) *Uniform {
	if lower > upper {
		lower, upper = upper, lower
	}
	return &Uniform{dist: distuv.Uniform{
		Min: lower,
		Max: upper,
		Src: rand.NewSource(clockSeed()),
	}}
}

// Default returns the initializer for dense layers: uniform over [-1, 1).
func Default() *Uniform {
	return NewUniform(-1, 1)
}

// Seed switches u to a private generator seeded with seed and returns u.
func (u *Uniform) Seed(seed uint64) *Uniform {
	u.dist.Src = rand.NewSource(seed)
	return u
}

// Bounds returns the half-open range u draws from.
func (u *Uniform) Bounds() (lower, upper float64) {
	return u.dist.Min, u.dist.Max
}

// Gen implements Source.
func (u *Uniform) Gen() float64 {
	return u.dist.Rand()
}

// Constant always generates the same value.
type Constant float64

// Gen implements Source.
func (c Constant) Gen() float64 {
	return float64(c)
}

// Fill overwrites every element of dst with values from src.
func Fill(dst []float64, src Source) {
	for i := range dst {
		dst[i] = src.Gen()
	}
}
