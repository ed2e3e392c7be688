package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/ffnet/internal/activations"
	"github.com/FlavioCFOliveira/ffnet/internal/initializers"
	"github.com/FlavioCFOliveira/ffnet/internal/layer"
	"github.com/FlavioCFOliveira/ffnet/internal/loss"
	"github.com/FlavioCFOliveira/ffnet/internal/net"
)

// config holds the command line settings.
type config struct {
	epochs    int
	lr        float64
	hidden    int
	act       string
	seed      uint64
	data      string
	labels    string
	header    bool
	normalize bool
	split     float64
	csvLog    string
	interval  int
}

func parseFlags(args []string) (config, error) {
	var c config
	fs := flag.NewFlagSet("xor", flag.ContinueOnError)
	fs.IntVar(&c.epochs, "epochs", 1000, "Number of training epochs")
	fs.Float64Var(&c.lr, "lr", 0.1, "Learning rate")
	fs.IntVar(&c.hidden, "hidden", 3, "Hidden layer width")
	fs.StringVar(&c.act, "act", "tanh", "Activation: tanh, relu, sigmoid, linear, leakyrelu")
	fs.Uint64Var(&c.seed, "seed", 0, "Initialization seed (0 = seed from the clock, different every run)")
	fs.StringVar(&c.data, "data", "", "CSV dataset to train on instead of XOR")
	fs.StringVar(&c.labels, "labels", "", "Comma-separated label column indices (default: last column)")
	fs.BoolVar(&c.header, "header", false, "CSV has a header row")
	fs.BoolVar(&c.normalize, "normalize", false, "Min-max normalize CSV features")
	fs.Float64Var(&c.split, "split", 1, "Fraction of samples used for training; the rest is evaluated")
	fs.StringVar(&c.csvLog, "csvlog", "", "Write per-epoch loss to this CSV file")
	fs.IntVar(&c.interval, "interval", 100, "Log every N epochs (0 = off)")
	if err := fs.Parse(args); err != nil {
		return c, err
	}
	if c.hidden <= 0 {
		return c, errors.Errorf("-hidden must be positive, got %d", c.hidden)
	}
	return c, nil
}

func parseLabels(s string) ([]int, error) {
	var cols []int
	for _, f := range strings.Split(s, ",") {
		col, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, errors.Wrapf(err, "bad label column %q", f)
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func xorDataset() *net.Dataset {
	ds := &net.Dataset{}
	ds.Add([]float64{0, 0}, []float64{0})
	ds.Add([]float64{0, 1}, []float64{1})
	ds.Add([]float64{1, 0}, []float64{1})
	ds.Add([]float64{1, 1}, []float64{0})
	return ds
}

func loadDataset(c config) (*net.Dataset, error) {
	if c.data == "" {
		return xorDataset(), nil
	}

	var labelCols []int
	if c.labels != "" {
		cols, err := parseLabels(c.labels)
		if err != nil {
			return nil, err
		}
		labelCols = cols
	} else {
		// default to the last column
		f, err := os.Open(c.data)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open dataset")
		}
		first, err := csv.NewReader(f).Read()
		f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", c.data)
		}
		labelCols = []int{len(first) - 1}
	}

	ds, err := net.LoadCSV(c.data, labelCols, c.header)
	if err != nil {
		return nil, err
	}
	if c.normalize {
		ds.Normalize()
	}
	return ds, nil
}

func buildNetwork(c config, in, out int) (*net.Network, error) {
	act, ok := activations.Parse(c.act)
	if !ok {
		return nil, errors.Errorf("unknown activation %q", c.act)
	}

	src := initializers.Default()
	if c.seed != 0 {
		src.Seed(c.seed)
	}

	return net.New([]layer.Layer{
		layer.NewDenseFrom(in, c.hidden, src),
		layer.NewActivation(act),
		layer.NewDenseFrom(c.hidden, out, src),
		layer.NewActivation(act),
	}, loss.MSE{})
}

func run(c config) error {
	ds, err := loadDataset(c)
	if err != nil {
		return err
	}
	train, test := ds.Split(c.split)
	if train.Len() == 0 {
		return errors.Errorf("-split %.2f leaves no training samples", c.split)
	}

	network, err := buildNetwork(c, len(train.Samples[0]), len(train.Labels[0]))
	if err != nil {
		return err
	}
	if err := network.Summary(os.Stdout); err != nil {
		return err
	}

	callbacks := []net.Callback{net.NewLogger(c.interval, log.Default())}
	if c.csvLog != "" {
		callbacks = append(callbacks, net.NewCSVLogger(c.csvLog, false))
	}

	history, err := network.Train(train, c.epochs, c.lr, callbacks...)
	if err != nil {
		return err
	}
	if len(history) > 0 {
		fmt.Printf("\nFinal training loss: %.6f\n", history[len(history)-1])
	}

	if test.Len() > 0 {
		l, err := network.Evaluate(test)
		if err != nil {
			return err
		}
		fmt.Printf("Held-out loss (%d samples): %.6f\n", test.Len(), l)
	}

	fmt.Println("\nPredictions:")
	for i := range train.Samples {
		pred, err := network.Predict(train.Samples[i])
		if err != nil {
			return err
		}
		fmt.Printf("Input: %v, Predicted: %.4f, Target: %v\n", train.Samples[i], pred, train.Labels[i])
	}
	return nil
}

func main() {
	c, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}

	if err := run(c); err != nil {
		log.Fatalf("xor: %v", err)
	}
}
