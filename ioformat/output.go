package ioformat

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ehrlich-b/riversolve/internal/solver"
)

// WriteOutputFile writes records to path as the JSON array described by
// the node-record JSON output format.
func WriteOutputFile(path string, records []solver.NodeRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	return WriteOutput(f, records)
}

// WriteOutput encodes records as a JSON array of node records in
// construction order.
func WriteOutput(w io.Writer, records []solver.NodeRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
