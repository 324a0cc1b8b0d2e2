// Package corpus resolves and reads the document set fed into the pipeline.
// Documents are listed in a plain-text file, one name per line; each name is
// resolved against the list's directory first and a fallback subdirectory
// second. A document's identity is its position in the resolved list.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/asanchez-dev/bowbench/pkg/logger"
)

// Document is one entry of the resolved input list. Index is the 0-based
// position in that list and is stable for the whole run.
type Document struct {
	Index int
	Name  string
	Path  string
}

// LoadList reads a newline-delimited list of document names. Blank lines are
// skipped.
func LoadList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document list %s: %w", path, err)
	}
	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

// Resolve turns listed names into Documents. Each name is tried next to the
// list file, then under the fallback subdirectory. Names that resolve nowhere
// are logged and excluded; the surviving documents are re-indexed 0..n-1.
func Resolve(listPath string, names []string, fallbackSubdir string) []Document {
	log := logger.WithComponent("corpus")
	listDir := filepath.Dir(listPath)
	fallbackDir := filepath.Join(listDir, fallbackSubdir)

	docs := make([]Document, 0, len(names))
	for _, name := range names {
		candidate := filepath.Join(listDir, name)
		if _, err := os.Stat(candidate); err != nil {
			candidate = filepath.Join(fallbackDir, name)
		}
		if _, err := os.Stat(candidate); err != nil {
			log.Warn("document not found, excluding from run", "name", name)
			continue
		}
		docs = append(docs, Document{
			Index: len(docs),
			Name:  filepath.Base(candidate),
			Path:  candidate,
		})
	}
	return docs
}

// ReadFile reads a whole document. A failure means the caller should skip the
// document.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}
	return data, nil
}
