// Package dataset reads the training table and the laptop catalog seed from
// CSV files.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"myLaptopDesk/domain"
)

const (
	ColumnRole              = "Role"
	ColumnRequiredCPU       = "Required CPU Speed (GHz)"
	ColumnRequiredRAM       = "Required RAM (GB)"
	ColumnRequiredStorage   = "Required Storage (GB)"
	ColumnRecommendedLaptop = "Recommended Laptop"

	ColumnLaptopName        = "Laptop Name"
	ColumnRequiredGPU       = "Required GPU"
	ColumnMaintenanceStatus = "Maintenance Status"
)

var ErrMissingColumn = errors.New("missing column")

// header maps column names to their position. Names are matched after
// trimming blanks and a UTF-8 byte order mark.
type header map[string]int

func readHeader(r *csv.Reader) (header, error) {
	names, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	h := make(header, len(names))
	for i, n := range names {
		n = strings.TrimSpace(strings.TrimPrefix(n, "\ufeff"))
		if _, dup := h[n]; !dup {
			h[n] = i
		}
	}
	return h, nil
}

func (h header) require(names ...string) error {
	var missing []string
	for _, n := range names {
		if _, ok := h[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

func (h header) get(record []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

// ReadTrainingRows parses the training table. Values are returned as text;
// cleaning happens when the model is fitted.
func ReadTrainingRows(r io.Reader) ([]domain.RawTrainingRow, error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	if err := h.require(ColumnRole, ColumnRequiredCPU, ColumnRequiredRAM, ColumnRequiredStorage, ColumnRecommendedLaptop); err != nil {
		return nil, err
	}

	var rows []domain.RawTrainingRow
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if isBlank(record) {
			continue
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, domain.RawTrainingRow{
			Line:              line,
			Role:              h.get(record, ColumnRole),
			RequiredCPU:       h.get(record, ColumnRequiredCPU),
			RequiredRAM:       h.get(record, ColumnRequiredRAM),
			RequiredStorage:   h.get(record, ColumnRequiredStorage),
			RecommendedLaptop: h.get(record, ColumnRecommendedLaptop),
		})
	}
	return rows, nil
}

func LoadTrainingRows(path string) ([]domain.RawTrainingRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	rows, err := ReadTrainingRows(f)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return rows, nil
}

// CatalogEntry is one laptop of the catalog seed. MaintenanceStatus is empty
// when the seed has no such column or leaves it blank.
type CatalogEntry struct {
	Laptop            domain.Laptop
	MaintenanceStatus string
}

func ReadCatalog(r io.Reader) ([]CatalogEntry, error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	if err := h.require(ColumnLaptopName); err != nil {
		return nil, err
	}

	var entries []CatalogEntry
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		name := strings.TrimSpace(h.get(record, ColumnLaptopName))
		if name == "" {
			continue
		}

		entry := CatalogEntry{
			Laptop:            domain.Laptop{Name: name},
			MaintenanceStatus: strings.TrimSpace(h.get(record, ColumnMaintenanceStatus)),
		}
		if raw := strings.TrimSpace(h.get(record, ColumnRequiredGPU)); raw != "" {
			gpu, err := parseBool(raw)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s %q: %w", line, ColumnRequiredGPU, raw, err)
			}
			entry.Laptop.RequiredGPU = &gpu
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func LoadCatalog(path string) ([]CatalogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	entries, err := ReadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return entries, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	return strconv.ParseBool(s)
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
