package bow

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteCSV(t *testing.T) {
	m := Matrix{
		Vocabulary: Vocabulary{"cat", "dog"},
		Names:      []string{"a.txt", "b.txt"},
		Rows:       [][]int{{2, 0}, {0, 7}},
	}
	var sb strings.Builder
	if err := WriteCSV(&sb, m); err != nil {
		t.Fatal(err)
	}
	want := "document,cat,dog\na.txt,2,0\nb.txt,0,7\n"
	if sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
}

func TestWriteCSVEmptyVocabulary(t *testing.T) {
	m := Matrix{
		Names: []string{"a.txt"},
		Rows:  [][]int{{}},
	}
	var sb strings.Builder
	if err := WriteCSV(&sb, m); err != nil {
		t.Fatal(err)
	}
	if want := "document\na.txt\n"; sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
}

func TestWriteCSVFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "nested", "out.csv")
	m := Matrix{
		Vocabulary: Vocabulary{"x"},
		Names:      []string{"a.txt"},
		Rows:       [][]int{{1}},
	}
	if err := WriteCSVFile(path, m); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "document,x\na.txt,1\n"; string(data) != want {
		t.Errorf("got %q, want %q", data, want)
	}
}
