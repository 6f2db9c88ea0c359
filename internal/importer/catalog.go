package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// Catalog CSV columns, in file order.
const (
	colDepartment = iota
	colDepartmentCode
	colNumber
	colTitle
	colCredits
	colPrerequisites
	colDescription
	colGE
	colQuartersOffered
	catalogColumns
)

// DefaultCatalogCredits applies when the credits column is blank or not a number.
const DefaultCatalogCredits = 5

// LoadCatalogCSV reads a catalog export from path.
func LoadCatalogCSV(path string) ([]*domain.CatalogRecord, []error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ParseCatalogCSV(f)
}

// ParseCatalogCSV parses catalog rows. A leading header row is skipped. Rows
// that cannot be used are reported in the second return value and left out;
// the error is only set when the stream itself is unreadable.
func ParseCatalogCSV(r io.Reader) ([]*domain.CatalogRecord, []error, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		records []*domain.CatalogRecord
		rowErrs []error
		n       int
	)
	seen := make(map[domain.CatalogKey]int)
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		n++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				rowErrs = append(rowErrs, fmt.Errorf("row %d: %w", n, err))
				continue
			}
			return nil, nil, fmt.Errorf("reading catalog: %w", err)
		}
		if n == 1 && isHeader(fields) {
			continue
		}

		rec, err := parseCatalogRow(fields)
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("row %d: %w", n, err))
			continue
		}
		if first, dup := seen[rec.Key()]; dup {
			rowErrs = append(rowErrs, fmt.Errorf("row %d: %s already defined on row %d", n, rec.Key(), first))
			continue
		}
		seen[rec.Key()] = n
		records = append(records, rec)
	}
	return records, rowErrs, nil
}

func isHeader(row []string) bool {
	return len(row) > colDepartmentCode && strings.EqualFold(strings.TrimSpace(row[colDepartmentCode]), "departmentCode")
}

func parseCatalogRow(row []string) (*domain.CatalogRecord, error) {
	if len(row) < colTitle+1 {
		return nil, fmt.Errorf("expected at least %d columns, got %d", colTitle+1, len(row))
	}
	for len(row) < catalogColumns {
		row = append(row, "")
	}

	key, ok := domain.ParseCatalogKey(strings.TrimSpace(row[colDepartmentCode]) + " " + strings.TrimSpace(row[colNumber]))
	if !ok {
		return nil, fmt.Errorf("invalid course key %q %q", row[colDepartmentCode], row[colNumber])
	}

	credits, err := strconv.Atoi(strings.TrimSpace(row[colCredits]))
	if err != nil || credits < 0 {
		credits = DefaultCatalogCredits
	}

	quarters, err := parseTerms(row[colQuartersOffered])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}

	rec := &domain.CatalogRecord{
		Course: domain.Course{
			DepartmentCode:  key.DepartmentCode,
			Number:          key.Number,
			Title:           strings.TrimSpace(row[colTitle]),
			Credits:         credits,
			Description:     strings.TrimSpace(row[colDescription]),
			GE:              splitList(row[colGE]),
			QuartersOffered: quarters,
		},
		Department:    strings.TrimSpace(row[colDepartment]),
		Prerequisites: strings.TrimSpace(row[colPrerequisites]),
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// splitList splits a comma-separated cell. "None" marks an empty list.
func splitList(cell string) []string {
	var out []string
	for _, part := range strings.Split(cell, ",") {
		part = strings.TrimSpace(part)
		if part == "" || strings.EqualFold(part, "none") {
			continue
		}
		out = append(out, part)
	}
	return out
}

func parseTerms(cell string) ([]domain.Term, error) {
	var terms []domain.Term
	for _, part := range splitList(cell) {
		if !domain.ValidTerms[part] {
			return nil, fmt.Errorf("unknown term %q", part)
		}
		terms = append(terms, domain.Term(part))
	}
	return terms, nil
}
