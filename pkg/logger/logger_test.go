package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONOutputCarriesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { InitWithWriter("production", &bytes.Buffer{}) })

	Info("recommendation served", "role", "Developer", "neighbors", 5, "err", errors.New("boom"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "recommendation served", line["message"])
	assert.Equal(t, "Developer", line["role"])
	assert.EqualValues(t, 5, line["neighbors"])
	assert.Equal(t, "boom", line["err"])
}

func TestProductionDropsDebug(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { InitWithWriter("production", &bytes.Buffer{}) })

	Debug("noisy")
	assert.Zero(t, buf.Len())

	Warn("kept")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestGroupsPrefixKeys(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { InitWithWriter("production", &bytes.Buffer{}) })

	Get().WithGroup("catalog").Info("lookup", "laptop", "UltraBook9")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "UltraBook9", line["catalog.laptop"])
}
