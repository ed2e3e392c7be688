// Package net provides the network orchestrator: assembly, inference and
// per-sample gradient descent training.
package net

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/FlavioCFOliveira/ffnet/internal/layer"
	"github.com/FlavioCFOliveira/ffnet/internal/loss"
)

// Network is an ordered sequence of layers trained against one loss.
//
// A Network owns its layers and mutates them in place while learning. It is
// not safe for concurrent use; callers must serialize access.
//
// Numeric instability (NaN or Inf from an oversized learning rate) is not
// corrected: non-finite values propagate through later calls unchanged.
type Network struct {
	layers []layer.Layer
	loss   loss.Loss

	// Declared widths; -1 when unknown before the first call.
	inSize  int
	outSize int

	// opaque is set when some layer neither declares its widths nor is
	// known to preserve them. Output lengths are then checked after the
	// forward pass instead of up front.
	opaque bool

	// Per-call caches of length len(layers)+1, reused across Learn calls.
	// inputs[i] is the input of layer i, inputs[len(layers)] the output;
	// errs[i] is the loss gradient with respect to inputs[i].
	inputs      [][]float64
	errs        [][]float64
	lossGradBuf []float64
}

// New assembles a network from layers and a loss.
//
// Adjacent layers that declare their widths (see layer.Shaped) must agree.
// Activation layers are width-preserving. Any other layer without declared
// widths is opaque: widths are not checked across it, and a target of the
// wrong length is only caught once the output is known.
func New(layers []layer.Layer, l loss.Loss) (*Network, error) {
	if len(layers) == 0 {
		return nil, errors.Wrap(ErrInvalidNetwork, "no layers")
	}
	if l == nil {
		return nil, errors.Wrap(ErrInvalidNetwork, "nil loss")
	}

	inSize, width := -1, -1
	opaque, shaped := false, false
	for i, ly := range layers {
		if ly == nil {
			return nil, errors.Wrapf(ErrInvalidNetwork, "layer %d is nil", i)
		}
		s, ok := ly.(layer.Shaped)
		if !ok {
			if _, act := ly.(*layer.Activation); !act {
				opaque = true
				width = -1
			}
			continue
		}
		if width >= 0 && s.InSize() != width {
			return nil, errors.Wrapf(ErrDimensionMismatch,
				"layer %d (%s) expects %d inputs but receives %d", i, layerName(ly), s.InSize(), width)
		}
		if !shaped && !opaque {
			inSize = s.InSize()
		}
		shaped = true
		width = s.OutSize()
	}

	owned := make([]layer.Layer, len(layers))
	copy(owned, layers)

	return &Network{
		layers:  owned,
		loss:    l,
		inSize:  inSize,
		outSize: width,
		opaque:  opaque,
		inputs:  make([][]float64, len(layers)+1),
		errs:    make([][]float64, len(layers)+1),
	}, nil
}

func layerName(l layer.Layer) string {
	name := fmt.Sprintf("%T", l)
	for j := len(name) - 1; j >= 0; j-- {
		if name[j] == '.' {
			return name[j+1:]
		}
	}
	return name
}

// checkInput validates an input vector against the declared input width.
func (n *Network) checkInput(x []float64) error {
	if len(x) == 0 {
		return errors.Wrap(ErrDimensionMismatch, "empty input")
	}
	if n.inSize >= 0 && len(x) != n.inSize {
		return errors.Wrapf(ErrDimensionMismatch, "input has %d values, network expects %d", len(x), n.inSize)
	}
	return nil
}

// checkSample validates an (input, expected) pair.
func (n *Network) checkSample(x, y []float64) error {
	if err := n.checkInput(x); err != nil {
		return err
	}
	want := n.outSize
	if want < 0 {
		if n.opaque {
			return nil
		}
		// only width-preserving layers
		want = len(x)
	}
	return checkOutput(y, want)
}

func checkOutput(y []float64, want int) error {
	if len(y) != want {
		return errors.Wrapf(ErrDimensionMismatch, "expected output has %d values, network produces %d", len(y), want)
	}
	return nil
}

func (n *Network) forward(x []float64) []float64 {
	curr := x
	for i := range n.layers {
		curr = n.layers[i].Forward(curr)
	}
	return curr
}

// Predict runs a forward pass only. No layer is mutated.
func (n *Network) Predict(x []float64) ([]float64, error) {
	if err := n.checkInput(x); err != nil {
		return nil, err
	}
	return n.forward(x), nil
}

// Learn performs one gradient descent step on a single sample and returns
// the network output and the loss, both computed before the update.
//
// The forward pass caches every layer input. The backward pass walks the
// layers in reverse: layer i first propagates the error it received,
// errs[i+1], to errs[i], then updates its own parameters from its cached
// input and errs[i+1].
func (n *Network) Learn(x, y []float64, lr float64) ([]float64, float64, error) {
	if err := n.checkSample(x, y); err != nil {
		return nil, 0, err
	}

	last := len(n.layers)
	inputs, errs := n.inputs, n.errs
	defer func() {
		clear(inputs)
		clear(errs)
	}()

	inputs[0] = x
	for i, l := range n.layers {
		inputs[i+1] = l.Forward(inputs[i])
	}
	output := inputs[last]
	if err := checkOutput(y, len(output)); err != nil {
		return nil, 0, err
	}

	value := n.loss.Forward(output, y)

	if inPlace, ok := n.loss.(loss.BackwardInPlacer); ok {
		if cap(n.lossGradBuf) < len(output) {
			n.lossGradBuf = make([]float64, len(output))
		}
		grad := n.lossGradBuf[:len(output)]
		inPlace.BackwardInPlace(output, y, grad)
		errs[last] = grad
	} else {
		errs[last] = n.loss.Backward(output, y)
	}
	if len(errs[last]) != len(output) {
		return nil, 0, errors.Wrapf(ErrDimensionMismatch,
			"loss gradient has %d values for %d outputs", len(errs[last]), len(output))
	}

	for i := last - 1; i >= 0; i-- {
		errs[i] = n.layers[i].Backward(inputs[i], errs[i+1])
		n.layers[i].UpdateParams(inputs[i], errs[i+1], lr)
	}

	return output, value, nil
}

// Train runs epochs passes over ds, calling Learn once per sample in dataset
// order, and returns the mean loss of every epoch. Each mean is also handed
// to the callbacks. The dataset is validated before any parameter changes,
// except that behind an opaque layer a label of the wrong length is only
// reported when its sample is reached.
func (n *Network) Train(ds *Dataset, epochs int, lr float64, callbacks ...Callback) ([]float64, error) {
	if err := n.checkDataset(ds); err != nil {
		return nil, err
	}
	if epochs < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "negative epoch count %d", epochs)
	}

	for _, cb := range callbacks {
		cb.OnTrainBegin(n)
	}
	defer func() {
		for _, cb := range callbacks {
			cb.OnTrainEnd(n)
		}
	}()

	history := make([]float64, 0, epochs)
	losses := make([]float64, ds.Len())
	for epoch := 0; epoch < epochs; epoch++ {
		for _, cb := range callbacks {
			cb.OnEpochBegin(epoch, n)
		}

		for i := range ds.Samples {
			_, l, err := n.Learn(ds.Samples[i], ds.Labels[i], lr)
			if err != nil {
				return history, errors.Wrapf(err, "epoch %d, sample %d", epoch, i)
			}
			losses[i] = l
		}

		mean := stat.Mean(losses, nil)
		history = append(history, mean)

		for _, cb := range callbacks {
			cb.OnEpochEnd(epoch, mean, n)
		}
	}

	return history, nil
}

// Evaluate returns the mean loss over ds without changing any parameter.
func (n *Network) Evaluate(ds *Dataset) (float64, error) {
	if err := n.checkDataset(ds); err != nil {
		return 0, err
	}

	losses := make([]float64, ds.Len())
	for i := range ds.Samples {
		out := n.forward(ds.Samples[i])
		if err := checkOutput(ds.Labels[i], len(out)); err != nil {
			return 0, errors.Wrapf(err, "sample %d", i)
		}
		losses[i] = n.loss.Forward(out, ds.Labels[i])
	}
	return stat.Mean(losses, nil), nil
}

func (n *Network) checkDataset(ds *Dataset) error {
	if ds == nil || ds.Len() == 0 {
		return ErrEmptyDataset
	}
	if len(ds.Labels) != len(ds.Samples) {
		return errors.Wrapf(ErrInvalidArgument, "dataset has %d samples but %d labels", len(ds.Samples), len(ds.Labels))
	}
	for i := range ds.Samples {
		if err := n.checkSample(ds.Samples[i], ds.Labels[i]); err != nil {
			return errors.Wrapf(err, "sample %d", i)
		}
	}
	return nil
}

// Params returns the parameters of every trainable layer, flattened in
// layer order (copy).
func (n *Network) Params() []float64 {
	var params []float64
	for _, l := range n.layers {
		if p, ok := l.(layer.Parameterized); ok {
			params = append(params, p.Params()...)
		}
	}
	return params
}

// NumParams returns the total number of trainable parameters.
func (n *Network) NumParams() int {
	total := 0
	for _, l := range n.layers {
		if p, ok := l.(layer.Parameterized); ok {
			total += p.NumParams()
		}
	}
	return total
}

// SetParams loads a flattened parameter vector produced by Params.
func (n *Network) SetParams(params []float64) error {
	if len(params) != n.NumParams() {
		return errors.Wrapf(ErrDimensionMismatch, "got %d parameters, network has %d", len(params), n.NumParams())
	}

	offset := 0
	for _, l := range n.layers {
		if p, ok := l.(layer.Parameterized); ok {
			size := p.NumParams()
			p.SetParams(params[offset : offset+size])
			offset += size
		}
	}
	return nil
}

// Layers returns the network's layers slice.
func (n *Network) Layers() []layer.Layer {
	return n.layers
}

// Loss returns the network's loss.
func (n *Network) Loss() loss.Loss {
	return n.loss
}

// InSize returns the declared input width, or -1 if it is not known before
// the first call.
func (n *Network) InSize() int {
	return n.inSize
}

// OutSize returns the declared output width, or -1 if it is not known before
// the first call.
func (n *Network) OutSize() int {
	return n.outSize
}
