package main

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlagsDefaults(t *testing.T) {
	c, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, 1000, c.epochs)
	assert.Equal(t, 0.1, c.lr)
	assert.Equal(t, 3, c.hidden)
	assert.Equal(t, "tanh", c.act)
	assert.Equal(t, 1.0, c.split)
}

func TestParseFlagsRejectsBadHidden(t *testing.T) {
	_, err := parseFlags([]string{"-hidden", "0"})
	assert.Error(t, err)
}

func TestParseLabels(t *testing.T) {
	cols, err := parseLabels("3, 1")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, cols)

	_, err = parseLabels("a")
	assert.Error(t, err)
}

// TestParseLabelsKeepsCause tests that label errors wrap the strconv error.
func TestParseLabelsKeepsCause(t *testing.T) {
	_, err := parseLabels("1,x")
	require.Error(t, err)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
	assert.Contains(t, err.Error(), `bad label column "x"`)
}

func TestLoadDatasetMissingFile(t *testing.T) {
	_, err := loadDataset(config{data: filepath.Join(t.TempDir(), "missing.csv")})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuildNetworkUnknownActivation(t *testing.T) {
	c, err := parseFlags([]string{"-act", "softplus"})
	require.NoError(t, err)
	_, err = buildNetwork(c, 2, 1)
	assert.Error(t, err)
}

func TestLoadDatasetDefaultsToLastColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,2,3\n4,5,6\n"), 0o644))

	ds, err := loadDataset(config{data: path})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {4, 5}}, ds.Samples)
	assert.Equal(t, [][]float64{{3}, {6}}, ds.Labels)
}

func TestRunXOR(t *testing.T) {
	c, err := parseFlags([]string{"-epochs", "5", "-seed", "7", "-interval", "0"})
	require.NoError(t, err)
	assert.NoError(t, run(c))
}
