package net

import (
	"log"
)

// Callback receives training progress from Network.Train. Epochs are
// numbered from 0; loss is the mean sample loss of the epoch.
type Callback interface {
	OnTrainBegin(n *Network)
	OnTrainEnd(n *Network)
	OnEpochBegin(epoch int, n *Network)
	OnEpochEnd(epoch int, loss float64, n *Network)
}

// BaseCallback provides default empty implementations for Callback.
type BaseCallback struct{}

func (c BaseCallback) OnTrainBegin(n *Network)                        {}
func (c BaseCallback) OnTrainEnd(n *Network)                          {}
func (c BaseCallback) OnEpochBegin(epoch int, n *Network)             {}
func (c BaseCallback) OnEpochEnd(epoch int, loss float64, n *Network) {}

// EpochFunc adapts a plain function to a Callback that only observes
// epoch ends.
type EpochFunc func(epoch int, loss float64)

func (f EpochFunc) OnTrainBegin(n *Network)            {}
func (f EpochFunc) OnTrainEnd(n *Network)              {}
func (f EpochFunc) OnEpochBegin(epoch int, n *Network) {}

func (f EpochFunc) OnEpochEnd(epoch int, loss float64, n *Network) {
	f(epoch, loss)
}

// Logger logs the epoch loss every Interval epochs (never when Interval <= 0)
// and the number of completed epochs when training ends.
type Logger struct {
	BaseCallback
	Interval int
	Out      *log.Logger // log.Default() when nil

	epochs int
}

// NewLogger returns a Logger writing to out every interval epochs.
func NewLogger(interval int, out *log.Logger) *Logger {
	return &Logger{Interval: interval, Out: out}
}

func (c *Logger) logger() *log.Logger {
	if c.Out == nil {
		return log.Default()
	}
	return c.Out
}

func (c *Logger) OnEpochEnd(epoch int, loss float64, n *Network) {
	c.epochs = epoch + 1
	if c.Interval > 0 && epoch%c.Interval == 0 {
		c.logger().Printf("epoch %d: loss = %.6f", epoch, loss)
	}
}

func (c *Logger) OnTrainEnd(n *Network) {
	if c.epochs > 0 {
		c.logger().Printf("trained %d epochs", c.epochs)
	}
}
