package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myLaptopDesk/domain"
)

func TestReadTrainingRows(t *testing.T) {
	in := "\ufeffRecommended Laptop,Role,Required CPU Speed (GHz),Required RAM (GB),Required Storage (GB),Notes\n" +
		"UltraBook9,Developer,2.5,16,512,fast\n" +
		"\n" +
		"DesignPro15,Designer,3.6,64,\"2,048\",\n"

	rows, err := ReadTrainingRows(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, domain.RawTrainingRow{
		Line:              2,
		Role:              "Developer",
		RequiredCPU:       "2.5",
		RequiredRAM:       "16",
		RequiredStorage:   "512",
		RecommendedLaptop: "UltraBook9",
	}, rows[0])
	assert.Equal(t, 4, rows[1].Line)
	assert.Equal(t, "2,048", rows[1].RequiredStorage)
}

func TestReadTrainingRowsMissingColumn(t *testing.T) {
	_, err := ReadTrainingRows(strings.NewReader("Role,Required CPU Speed (GHz),Required RAM (GB)\nDeveloper,2.5,16\n"))
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "Required Storage (GB)")
	assert.Contains(t, err.Error(), "Recommended Laptop")

	_, err = ReadTrainingRows(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadTrainingRowsShortRecord(t *testing.T) {
	in := "Role,Required CPU Speed (GHz),Required RAM (GB),Required Storage (GB),Recommended Laptop\nDeveloper,2.5\n"

	rows, err := ReadTrainingRows(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	// the missing cells surface as empty strings and fail cleaning later
	assert.Empty(t, rows[0].RequiredRAM)
	assert.Empty(t, rows[0].RecommendedLaptop)
}

func TestLoadTrainingRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train_laptops.csv")
	require.NoError(t, os.WriteFile(path, []byte("Role,Required CPU Speed (GHz),Required RAM (GB),Required Storage (GB),Recommended Laptop\nManager,1.6,8,256,BizLite13\n"), 0o600))

	rows, err := LoadTrainingRows(path)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = LoadTrainingRows(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestReadCatalog(t *testing.T) {
	in := "Laptop Name,Required GPU,Maintenance Status\n" +
		"UltraBook9,no,Healthy\n" +
		"Workstation7,Yes,\n" +
		"BizLite13,,\n" +
		",true,orphan\n"

	entries, err := ReadCatalog(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "UltraBook9", entries[0].Laptop.Name)
	require.NotNil(t, entries[0].Laptop.RequiredGPU)
	assert.False(t, *entries[0].Laptop.RequiredGPU)
	assert.Equal(t, "Healthy", entries[0].MaintenanceStatus)

	require.NotNil(t, entries[1].Laptop.RequiredGPU)
	assert.True(t, *entries[1].Laptop.RequiredGPU)
	assert.Empty(t, entries[1].MaintenanceStatus)

	assert.Nil(t, entries[2].Laptop.RequiredGPU)

	_, err = ReadCatalog(strings.NewReader("Laptop Name,Required GPU\nX1,maybe\n"))
	assert.Error(t, err)

	_, err = ReadCatalog(strings.NewReader("Name\nX1\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}
