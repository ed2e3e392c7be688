package net

import (
	"fmt"
	"io"
	"strings"

	"github.com/FlavioCFOliveira/ffnet/internal/activations"
	"github.com/FlavioCFOliveira/ffnet/internal/layer"
	"github.com/FlavioCFOliveira/ffnet/internal/loss"
)

// Summary writes a table of the network's layers, output widths and
// parameter counts to w.
func (n *Network) Summary(w io.Writer) error {
	rule := strings.Repeat("_", 65)
	var b strings.Builder

	fmt.Fprintf(&b, "Model: %d layers, loss %s\n", len(n.layers), loss.Name(n.loss))
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "%-25s %-20s %-10s\n", "Layer (type)", "Output Shape", "Param #")
	fmt.Fprintln(&b, strings.Repeat("=", 65))

	width := n.inSize
	for i, l := range n.layers {
		name := layerName(l)
		a, isAct := l.(*layer.Activation)
		if isAct {
			name += "(" + activations.Name(a.Func()) + ")"
		}
		if s, ok := l.(layer.Shaped); ok {
			width = s.OutSize()
		} else if !isAct {
			width = -1
		}

		shape := "(?)"
		if width >= 0 {
			shape = fmt.Sprintf("(%d)", width)
		}

		params := 0
		if p, ok := l.(layer.Parameterized); ok {
			params = p.NumParams()
		}

		fmt.Fprintf(&b, "%-25s %-20s %-10d\n", fmt.Sprintf("%s_%d", name, i), shape, params)
	}

	fmt.Fprintln(&b, strings.Repeat("=", 65))
	fmt.Fprintf(&b, "Total params: %d\n", n.NumParams())
	fmt.Fprintln(&b, rule)

	_, err := io.WriteString(w, b.String())
	return err
}
