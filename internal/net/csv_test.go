package net

import (
	"bytes"
	"encoding/csv"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, rows [][]string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "data.csv")
	file, err := os.Create(filename)
	require.NoError(t, err)

	writer := csv.NewWriter(file)
	require.NoError(t, writer.WriteAll(rows))
	require.NoError(t, file.Close())
	return filename
}

func TestCSVLoader(t *testing.T) {
	filename := writeCSV(t, [][]string{
		{"f1", "f2", "l1", "f3", "l2"},
		{"1.0", "2.0", "0.0", "3.0", "1.0"},
		{"4.0", "5.0", "1.0", "6.0", "0.0"},
	})

	// labels come back in the order they are listed
	dataset, err := LoadCSV(filename, []int{4, 2}, true)
	require.NoError(t, err)
	require.Equal(t, 2, dataset.Len())

	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, dataset.Samples)
	assert.Equal(t, [][]float64{{1, 0}, {0, 1}}, dataset.Labels)
}

func TestCSVLoaderErrors(t *testing.T) {
	good := [][]string{{"1", "2", "3"}, {"4", "5", "6"}}

	_, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv"), []int{2}, false)
	assert.Error(t, err)

	_, err = LoadCSV(writeCSV(t, [][]string{{"a", "b"}}), []int{1}, true)
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = LoadCSV(writeCSV(t, good), []int{3}, false)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = LoadCSV(writeCSV(t, good), []int{1, 1}, false)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = LoadCSV(writeCSV(t, good), nil, false)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = LoadCSV(writeCSV(t, [][]string{{"1", "x", "3"}}), []int{2}, false)
	assert.Error(t, err)
}

// TestCSVLoaderRaggedRow tests that a short row is reported with its row
// number.
func TestCSVLoaderRaggedRow(t *testing.T) {
	rows := [][]string{{"a", "b", "c"}, {"1", "2", "3"}, {"4", "5"}}

	_, err := LoadCSV(writeCSV(t, rows), []int{2}, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "row 2 has 2 columns, expected 3")
}

// TestCSVLoaderTrains tests that a loaded dataset drives Train directly.
func TestCSVLoaderTrains(t *testing.T) {
	filename := writeCSV(t, [][]string{
		{"a", "b", "xor"},
		{"0", "0", "0"},
		{"0", "1", "1"},
		{"1", "0", "1"},
		{"1", "1", "0"},
	})
	ds, err := LoadCSV(filename, []int{2}, true)
	require.NoError(t, err)

	n := xorNetwork(t, 1)
	history, err := n.Train(ds, 3, 0.1)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestCSVLogger(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "log.csv")

	logger := NewCSVLogger(filename, false)
	n := xorNetwork(t, 1)
	_, err := n.Train(xorDataset(), 2, 0.1, logger)
	require.NoError(t, err)

	file, err := os.Open(filename)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3) // header + 2 epochs
	assert.Equal(t, []string{"epoch", "loss", "time_seconds"}, records[0])
	assert.Equal(t, "0", records[1][0])
	assert.Equal(t, "1", records[2][0])
}

// TestCSVLoggerReportsCloseErrors tests that failures of the final flush and
// close are logged rather than dropped.
func TestCSVLoggerReportsCloseErrors(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	logger := NewCSVLogger(filepath.Join(t.TempDir(), "log.csv"), false)
	n := &Network{}
	logger.OnTrainBegin(n)
	require.NotNil(t, logger.file)

	// buffered but not yet flushed when the file goes away
	require.NoError(t, logger.writer.Write([]string{"0", "0.5", "0.00"}))
	require.NoError(t, logger.file.Close())

	logger.OnTrainEnd(n)
	assert.Contains(t, buf.String(), "CSVLogger: failed to flush")
	assert.Contains(t, buf.String(), "CSVLogger: failed to close")
	assert.Nil(t, logger.file)
}

func TestCSVLoggerAppend(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "log.csv")
	n := &Network{}

	for run := 0; run < 2; run++ {
		logger := NewCSVLogger(filename, true)
		logger.OnTrainBegin(n)
		logger.OnEpochEnd(0, 0.5, n)
		logger.OnTrainEnd(n)
	}

	file, err := os.Open(filename)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	// one header, then one row per run
	require.Len(t, records, 3)
	assert.Equal(t, "0.500000", records[1][1])
	assert.Equal(t, "0.500000", records[2][1])
}

func TestDatasetNormalization(t *testing.T) {
	dataset := &Dataset{
		Samples: [][]float64{
			{10, 0, 7},
			{20, 5, 7},
			{30, 10, 7},
		},
	}

	dataset.Normalize()

	expected := [][]float64{
		{0.0, 0.0, 0},
		{0.5, 0.5, 0},
		{1.0, 1.0, 0},
	}
	assert.Equal(t, expected, dataset.Samples)
}

func TestDatasetSplit(t *testing.T) {
	ds := xorDataset()

	train, test := ds.Split(0.75)
	assert.Equal(t, 3, train.Len())
	assert.Equal(t, 1, test.Len())
	assert.Equal(t, []float64{1, 1}, test.Samples[0])

	train, test = ds.Split(0)
	assert.Equal(t, 0, train.Len())
	assert.Equal(t, 4, test.Len())

	train, test = ds.Split(1)
	assert.Equal(t, 4, train.Len())
	assert.Equal(t, 0, test.Len())
}
