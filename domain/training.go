package domain

// RawTrainingRow is one dataset line before cleaning. Numeric columns may
// carry thousands separators.
type RawTrainingRow struct {
	Line              int
	Role              string
	RequiredCPU       string
	RequiredRAM       string
	RequiredStorage   string
	RecommendedLaptop string
}

// TrainingRecord is a cleaned and encoded dataset row.
type TrainingRecord struct {
	RoleCode          int
	RequiredCPUGHz    float64
	RequiredRAMGB     int
	RequiredStorageGB int
	LaptopCode        int
}

// Recommendation is the outcome of a successful recommendation.
type Recommendation struct {
	Role   string `json:"role"`
	Laptop string `json:"laptop"`
	Status string `json:"status"`
}

// FitReport summarises a model fit.
type FitReport struct {
	Rows            int     `json:"rows"`
	SkippedRows     int     `json:"skipped_rows"`
	Roles           int     `json:"roles"`
	Laptops         int     `json:"laptops"`
	TrainRows       int     `json:"train_rows"`
	TestRows        int     `json:"test_rows"`
	HeldOutAccuracy float64 `json:"held_out_accuracy"`
}
