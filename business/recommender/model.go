package recommender

import (
	"context"
	"fmt"

	"myLaptopDesk/domain"
	"myLaptopDesk/pkg/logger"
)

// Model is the fitted encoder, transformer and classifier plus the encoded
// training table. It is immutable once Train returns and safe for
// concurrent use.
type Model struct {
	roles       codec
	laptops     codec
	records     []domain.TrainingRecord
	profiles    map[int][]float64
	transformer *transformer
	classifier  *knn
	report      domain.FitReport
}

// Train fits the whole pipeline once. Unparseable rows are skipped and
// logged; the fit fails only if nothing usable is left.
func Train(ctx context.Context, rows []domain.RawTrainingRow, cfg Config) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	cfg = cfg.withDefaults()

	enc := fitEncoder(rows)
	for _, err := range enc.skipped {
		logger.Warn("skipping training row", "error", err)
	}
	if len(enc.records) == 0 {
		return nil, fmt.Errorf("%w: none of %d rows could be parsed", domain.ErrInsufficientData, len(rows))
	}

	trainIdx, testIdx, err := splitIndices(len(enc.records), cfg.TestFraction, cfg.SplitSeed)
	if err != nil {
		return nil, err
	}

	trainRaw := make([][]float64, len(trainIdx))
	trainLabels := make([]int, len(trainIdx))
	for i, idx := range trainIdx {
		trainRaw[i] = featureVector(enc.records[idx])
		trainLabels[i] = enc.records[idx].LaptopCode
	}

	tf, err := fitTransformer(trainRaw)
	if err != nil {
		return nil, err
	}

	trainPoints := make([][]float64, len(trainRaw))
	for i, raw := range trainRaw {
		if trainPoints[i], err = tf.Transform(raw); err != nil {
			return nil, err
		}
	}

	clf, err := newKNN(cfg.Neighbors, trainPoints, trainLabels)
	if err != nil {
		return nil, err
	}

	m := &Model{
		roles:       enc.roles,
		laptops:     enc.laptops,
		records:     enc.records,
		profiles:    roleProfiles(enc.records),
		transformer: tf,
		classifier:  clf,
	}

	accuracy, err := m.heldOutAccuracy(enc.records, testIdx)
	if err != nil {
		return nil, err
	}

	m.report = domain.FitReport{
		Rows:            len(rows),
		SkippedRows:     len(enc.skipped),
		Roles:           enc.roles.Len(),
		Laptops:         enc.laptops.Len(),
		TrainRows:       len(trainIdx),
		TestRows:        len(testIdx),
		HeldOutAccuracy: accuracy,
	}
	HeldOutAccuracy.Set(accuracy)

	logger.Info("recommendation model trained",
		"rows", m.report.Rows,
		"skipped", m.report.SkippedRows,
		"roles", m.report.Roles,
		"laptops", m.report.Laptops,
		"train_rows", m.report.TrainRows,
		"test_rows", m.report.TestRows,
		"neighbors", clf.k,
		"held_out_accuracy", accuracy,
	)

	return m, nil
}

// roleProfiles averages cpu, ram and storage over every row of each role.
func roleProfiles(records []domain.TrainingRecord) map[int][]float64 {
	sums := make(map[int][]float64)
	counts := make(map[int]int)
	for _, r := range records {
		s, ok := sums[r.RoleCode]
		if !ok {
			s = make([]float64, 3)
			sums[r.RoleCode] = s
		}
		s[0] += r.RequiredCPUGHz
		s[1] += float64(r.RequiredRAMGB)
		s[2] += float64(r.RequiredStorageGB)
		counts[r.RoleCode]++
	}

	profiles := make(map[int][]float64, len(sums))
	for code, s := range sums {
		n := float64(counts[code])
		profiles[code] = []float64{float64(code), s[0] / n, s[1] / n, s[2] / n}
	}
	return profiles
}

func (m *Model) heldOutAccuracy(records []domain.TrainingRecord, testIdx []int) (float64, error) {
	if len(testIdx) == 0 {
		return 0, nil
	}
	hits := 0
	for _, idx := range testIdx {
		x, err := m.transformer.Transform(featureVector(records[idx]))
		if err != nil {
			return 0, err
		}
		if m.classifier.Predict(x) == records[idx].LaptopCode {
			hits++
		}
	}
	return float64(hits) / float64(len(testIdx)), nil
}

// predictForRole runs the role's mean profile through the transformer and
// the classifier and returns the predicted laptop code.
func (m *Model) predictForRole(roleCode int) (int, error) {
	profile, ok := m.profiles[roleCode]
	if !ok {
		return 0, fmt.Errorf("%w: no rows for role code %d", domain.ErrRoleNotFound, roleCode)
	}
	x, err := m.transformer.Transform(profile)
	if err != nil {
		return 0, err
	}
	return m.classifier.Predict(x), nil
}

// RoleCode returns the code assigned to role at fit time.
func (m *Model) RoleCode(role string) (int, bool) { return m.roles.Encode(role) }

// RoleName returns the role assigned to code at fit time.
func (m *Model) RoleName(code int) (string, bool) { return m.roles.Decode(code) }

// LaptopName decodes a predicted laptop code.
func (m *Model) LaptopName(code int) (string, bool) { return m.laptops.Decode(code) }

// Roles lists the known roles in code order.
func (m *Model) Roles() []string {
	return append([]string(nil), m.roles.names...)
}

func (m *Model) Report() domain.FitReport { return m.report }
