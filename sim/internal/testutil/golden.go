// Package testutil provides shared test infrastructure for the bay simulator.
// It holds the golden blocking-degree dataset used by sim/ tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/blocking_degree_golden.json.
type GoldenDataset struct {
	Lanes []GoldenLane `json:"lanes"`
}

// GoldenLane is one hand-computed blocking degree.
type GoldenLane struct {
	Name        string `json:"name"`
	BottomToTop []int  `json:"bottom_to_top"`
	Degree      int    `json:"degree"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "blocking_degree_golden.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Lanes) == 0 {
		t.Fatal("Golden dataset has no lanes")
	}
	return &dataset
}
