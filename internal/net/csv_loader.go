package net

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Dataset is an ordered collection of training samples. Sample i pairs the
// input Samples[i] with the expected output Labels[i].
type Dataset struct {
	Samples [][]float64
	Labels  [][]float64
}

// Add appends one (input, expected) pair.
func (d *Dataset) Add(input, expected []float64) {
	d.Samples = append(d.Samples, input)
	d.Labels = append(d.Labels, expected)
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Samples)
}

// LoadCSV loads data from a CSV file.
// labelCols specifies the indices of columns to be used as labels, in the
// order they should appear in each label vector. All other columns are
// features. hasHeader skips the first line if true.
func LoadCSV(filename string, labelCols []int, hasHeader bool) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// row lengths are checked below, against the first data row
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv")
	}

	startRow := 0
	if hasHeader {
		startRow = 1
	}
	if len(records) <= startRow {
		return nil, errors.Wrapf(ErrEmptyDataset, "%s has no data rows", filename)
	}

	numCols := len(records[startRow])
	isLabelCol := make(map[int]bool, len(labelCols))
	for _, col := range labelCols {
		if col < 0 || col >= numCols {
			return nil, errors.Wrapf(ErrInvalidArgument, "label column %d out of range [0, %d)", col, numCols)
		}
		if isLabelCol[col] {
			return nil, errors.Wrapf(ErrInvalidArgument, "label column %d listed twice", col)
		}
		isLabelCol[col] = true
	}
	if len(labelCols) == 0 || len(labelCols) == numCols {
		return nil, errors.Wrapf(ErrInvalidArgument, "%d label columns leave no features or no labels in %d columns", len(labelCols), numCols)
	}

	ds := &Dataset{
		Samples: make([][]float64, 0, len(records)-startRow),
		Labels:  make([][]float64, 0, len(records)-startRow),
	}
	values := make([]float64, numCols)

	for i := startRow; i < len(records); i++ {
		record := records[i]
		if len(record) != numCols {
			return nil, errors.Wrapf(ErrInvalidArgument, "row %d has %d columns, expected %d", i, len(record), numCols)
		}

		for j, valStr := range record {
			val, err := strconv.ParseFloat(valStr, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to parse value at row %d, col %d", i, j)
			}
			values[j] = val
		}

		sample := make([]float64, 0, numCols-len(labelCols))
		for j, val := range values {
			if !isLabelCol[j] {
				sample = append(sample, val)
			}
		}
		label := make([]float64, 0, len(labelCols))
		for _, col := range labelCols {
			label = append(label, values[col])
		}

		ds.Add(sample, label)
	}

	return ds, nil
}

// Normalize performs min-max normalization on the samples, in place.
// Constant features become 0.
func (d *Dataset) Normalize() {
	if len(d.Samples) == 0 {
		return
	}

	column := make([]float64, len(d.Samples))
	for f := range d.Samples[0] {
		for i, sample := range d.Samples {
			column[i] = sample[f]
		}
		lo, hi := floats.Min(column), floats.Max(column)

		for _, sample := range d.Samples {
			if diff := hi - lo; diff != 0 {
				sample[f] = (sample[f] - lo) / diff
			} else {
				sample[f] = 0
			}
		}
	}
}

// Split splits the dataset into two based on the given ratio (0.0 to 1.0),
// without reordering. The returned datasets share rows with d.
func (d *Dataset) Split(ratio float64) (train, test *Dataset) {
	if ratio <= 0 {
		return &Dataset{}, d
	}
	if ratio >= 1 {
		return d, &Dataset{}
	}

	splitIdx := int(float64(len(d.Samples)) * ratio)

	train = &Dataset{
		Samples: d.Samples[:splitIdx],
		Labels:  d.Labels[:splitIdx],
	}
	test = &Dataset{
		Samples: d.Samples[splitIdx:],
		Labels:  d.Labels[splitIdx:],
	}
	return train, test
}
