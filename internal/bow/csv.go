package bow

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// WriteCSV serializes the matrix: a header row of "document" followed by
// every vocabulary term in order, then one row per document with its display
// name and counts. Terms are guaranteed [a-z0-9_] by the tokenizer, so no
// quoting is needed.
func WriteCSV(w io.Writer, m Matrix) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("document")
	for _, term := range m.Vocabulary {
		bw.WriteByte(',')
		bw.WriteString(term)
	}
	bw.WriteByte('\n')

	for i, row := range m.Rows {
		bw.WriteString(m.Names[i])
		for _, v := range row {
			bw.WriteByte(',')
			bw.WriteString(strconv.Itoa(v))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteCSVFile writes the matrix to path, creating parent directories as
// needed. Called at most once per trial, only by the coordinator.
func WriteCSVFile(path string, m Matrix) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", path, err)
	}
	if err := WriteCSV(f, m); err != nil {
		f.Close()
		return fmt.Errorf("writing matrix to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file %s: %w", path, err)
	}
	return nil
}
