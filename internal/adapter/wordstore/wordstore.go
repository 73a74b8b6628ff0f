// Package wordstore loads quiz terms from CSV files. Each row holds the
// foreign term in the first column and the native translation in the second;
// extra columns are ignored.
package wordstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/heartmarshall/vocabvoyage-backend/internal/domain"
)

// Store reads and writes word files in a single data directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Load reads every *.csv file in the data directory, in file name order,
// and returns the concatenated terms.
func (s *Store) Load() ([]domain.Term, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read word dir %s: %w", s.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isCSV(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)

	var terms []domain.Term
	for _, name := range names {
		fileTerms, err := s.loadFile(filepath.Join(s.dir, name))
		if err != nil {
			return nil, err
		}
		terms = append(terms, fileTerms...)
	}

	return terms, nil
}

func (s *Store) loadFile(path string) ([]domain.Term, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word file: %w", err)
	}
	defer f.Close()

	terms, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return terms, nil
}

// Save writes an uploaded word file into the data directory. Only the base
// name is used; names without a .csv extension are rejected.
func (s *Store) Save(name string, r io.Reader) (string, error) {
	base, err := s.CheckName(name)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create word dir: %w", err)
	}

	dst := filepath.Join(s.dir, base)
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create word file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write word file: %w", err)
	}
	return dst, nil
}

// CheckName returns the base name Save would write to, or a validation
// error when the name is not an acceptable word file.
func (s *Store) CheckName(name string) (string, error) {
	base := filepath.Base(filepath.Clean(name))
	if base == "." || base == string(filepath.Separator) || !isCSV(base) {
		return "", domain.NewValidationError("files", fmt.Sprintf("%q is not a .csv file", name))
	}
	return base, nil
}

// Parse reads terms from CSV. Rows with fewer than two columns or with an
// empty term or translation are skipped. Fields are trimmed.
func Parse(r io.Reader) ([]domain.Term, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable column count
	reader.TrimLeadingSpace = true

	var terms []domain.Term
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		if len(record) < 2 {
			continue
		}

		term := domain.Term{
			ForeignTerm:       strings.TrimSpace(strings.TrimPrefix(record[0], "\ufeff")),
			NativeTranslation: strings.TrimSpace(record[1]),
		}
		if !term.IsValid() {
			continue
		}
		terms = append(terms, term)
	}

	return terms, nil
}

func isCSV(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csv")
}
