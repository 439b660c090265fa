// Package profiles persists sourced candidate profiles as parquet tables
// and loads them back as documents for indexing.
package profiles

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/hireloop/talentscout/internal/domain"
)

// profileRow is the parquet row layout. Column order is stable so tables
// written by different runs stay comparable.
type profileRow struct {
	ID         string `parquet:"id"`
	URN        string `parquet:"urn"`
	Username   string `parquet:"username"`
	FirstName  string `parquet:"first_name"`
	LastName   string `parquet:"last_name"`
	Headline   string `parquet:"headline"`
	Summary    string `parquet:"summary"`
	Experience string `parquet:"experience"`
	Skills     string `parquet:"skills"`
	Education  string `parquet:"education"`
	SourceURL  string `parquet:"source_url"`
}

var columnNames = []string{
	"id", "urn", "username", "first_name", "last_name", "headline",
	"summary", "experience", "skills", "education", "source_url",
}

// Store reads and writes profile tables.
type Store struct{}

// NewStore creates a profile table store.
func NewStore() *Store {
	return &Store{}
}

// Write persists profiles to a parquet file at path, replacing any
// existing file.
func (s *Store) Write(records []domain.Profile, path string) error {
	rows := make([]profileRow, len(records))
	for i, p := range records {
		rows[i] = profileRow{
			ID:         p.ID,
			URN:        p.URN,
			Username:   p.Username,
			FirstName:  p.FirstName,
			LastName:   p.LastName,
			Headline:   p.Headline,
			Summary:    p.Summary,
			Experience: p.ExperienceText(),
			Skills:     p.SkillsText(),
			Education:  p.EducationText(),
			SourceURL:  p.SourceURL(),
		}
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := parquet.NewGenericWriter[profileRow](f)
	if _, err := w.Write(rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("write rows: %w", err)
	}
	if err := w.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("close writer: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Sheets loads one or more profile tables as documents. path may point at
// a single parquet file or a directory of them; each file becomes one
// Document whose text is a readable aligned table.
func (s *Store) Sheets(path string) ([]domain.Document, error) {
	files, err := resolveFiles(path)
	if err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(files))
	for _, file := range files {
		rows, err := parquet.ReadFile[profileRow](file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", filepath.Base(file), err)
		}

		stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		docs = append(docs, domain.Document{
			Text:   renderTable(rows),
			Source: file,
			Sheet:  stem,
		})
	}
	return docs, nil
}

func resolveFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := filepath.Glob(filepath.Join(path, "*.parquet"))
	if err != nil {
		return nil, fmt.Errorf("glob parquet files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no parquet files found in %s", path)
	}
	sort.Strings(files)
	return files, nil
}

// renderTable formats rows as an aligned text table with a header line.
// Multi-line cell values are flattened so each row stays on one line.
func renderTable(rows []profileRow) string {
	cells := make([][]string, len(rows)+1)
	cells[0] = columnNames
	for i, r := range rows {
		cells[i+1] = []string{
			flatten(r.ID), flatten(r.URN), flatten(r.Username),
			flatten(r.FirstName), flatten(r.LastName), flatten(r.Headline),
			flatten(r.Summary), flatten(r.Experience), flatten(r.Skills),
			flatten(r.Education), flatten(r.SourceURL),
		}
	}

	widths := make([]int, len(columnNames))
	for _, row := range cells {
		for c, v := range row {
			if len(v) > widths[c] {
				widths[c] = len(v)
			}
		}
	}

	var b strings.Builder
	for _, row := range cells {
		for c, v := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			b.WriteString(v)
			if c < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[c]-len(v)))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
