package recommender

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"myLaptopDesk/domain"
)

// codec is a bijective name <-> code table. Codes follow the lexical order
// of the distinct names and never change after the fit.
type codec struct {
	codes map[string]int
	names []string
}

func newCodec(values []string) codec {
	seen := make(map[string]struct{}, len(values))
	names := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		names = append(names, v)
	}
	sort.Strings(names)

	codes := make(map[string]int, len(names))
	for i, n := range names {
		codes[n] = i
	}
	return codec{codes: codes, names: names}
}

func (c codec) Encode(name string) (int, bool) {
	code, ok := c.codes[name]
	return code, ok
}

func (c codec) Decode(code int) (string, bool) {
	if code < 0 || code >= len(c.names) {
		return "", false
	}
	return c.names[code], true
}

func (c codec) Len() int { return len(c.names) }

type cleanRow struct {
	role    string
	laptop  string
	cpu     float64
	ram     int
	storage int
}

// stripSeparators removes thousands separators and surrounding blanks.
func stripSeparators(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
}

func cleanTrainingRow(r domain.RawTrainingRow) (cleanRow, error) {
	role := strings.TrimSpace(r.Role)
	laptop := strings.TrimSpace(r.RecommendedLaptop)
	if role == "" {
		return cleanRow{}, fmt.Errorf("line %d: %w: empty role", r.Line, domain.ErrInvalidTrainingRow)
	}
	if laptop == "" {
		return cleanRow{}, fmt.Errorf("line %d: %w: empty recommended laptop", r.Line, domain.ErrInvalidTrainingRow)
	}

	cpu, err := strconv.ParseFloat(stripSeparators(r.RequiredCPU), 64)
	if err != nil {
		return cleanRow{}, fmt.Errorf("line %d: %w: cpu %q: %w", r.Line, domain.ErrInvalidTrainingRow, r.RequiredCPU, err)
	}
	ram, err := strconv.Atoi(stripSeparators(r.RequiredRAM))
	if err != nil {
		return cleanRow{}, fmt.Errorf("line %d: %w: ram %q: %w", r.Line, domain.ErrInvalidTrainingRow, r.RequiredRAM, err)
	}
	storage, err := strconv.Atoi(stripSeparators(r.RequiredStorage))
	if err != nil {
		return cleanRow{}, fmt.Errorf("line %d: %w: storage %q: %w", r.Line, domain.ErrInvalidTrainingRow, r.RequiredStorage, err)
	}

	return cleanRow{role: role, laptop: laptop, cpu: cpu, ram: ram, storage: storage}, nil
}

// encoded is the output of fitEncoder.
type encoded struct {
	records []domain.TrainingRecord
	roles   codec
	laptops codec
	skipped []error
}

// fitEncoder cleans rows and builds both codecs from the rows that survive.
// Unparseable rows are skipped and reported, never fatal on their own.
func fitEncoder(rows []domain.RawTrainingRow) encoded {
	clean := make([]cleanRow, 0, len(rows))
	var skipped []error
	for _, r := range rows {
		c, err := cleanTrainingRow(r)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		clean = append(clean, c)
	}

	roleNames := make([]string, len(clean))
	laptopNames := make([]string, len(clean))
	for i, c := range clean {
		roleNames[i] = c.role
		laptopNames[i] = c.laptop
	}
	roles := newCodec(roleNames)
	laptops := newCodec(laptopNames)

	records := make([]domain.TrainingRecord, len(clean))
	for i, c := range clean {
		roleCode, _ := roles.Encode(c.role)
		laptopCode, _ := laptops.Encode(c.laptop)
		records[i] = domain.TrainingRecord{
			RoleCode:          roleCode,
			RequiredCPUGHz:    c.cpu,
			RequiredRAMGB:     c.ram,
			RequiredStorageGB: c.storage,
			LaptopCode:        laptopCode,
		}
	}

	return encoded{records: records, roles: roles, laptops: laptops, skipped: skipped}
}

// featureVector is the classifier input order: role, cpu, ram, storage.
func featureVector(r domain.TrainingRecord) []float64 {
	return []float64{
		float64(r.RoleCode),
		r.RequiredCPUGHz,
		float64(r.RequiredRAMGB),
		float64(r.RequiredStorageGB),
	}
}
