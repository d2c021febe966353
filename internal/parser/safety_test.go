package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/locintel/internal/model"
)

func TestParseSafety(t *testing.T) {
	rows := ParseSafety(map[string]any{
		"0.0.0": float64(120),
		"1.1.1": float64(8),
	}, model.Float64(10000))
	require.Len(t, rows, 2)

	burglary := rowByKey(t, rows, "diefstal_inbraak_woning")
	require.NotNil(t, burglary.Absolute)
	assert.Equal(t, 8.0, *burglary.Absolute)
	require.NotNil(t, burglary.Relative)
	assert.InDelta(t, 0.8, *burglary.Relative, 1e-9, "per 1,000 inhabitants")
	assert.Equal(t, "Diefstal/inbraak woning", burglary.TitleNl)
}

func TestParseSafety_SuppressedSentinel(t *testing.T) {
	// "." means suppressed below the disclosure threshold: a real zero,
	// never null.
	rows := ParseSafety(map[string]any{
		"1.1.1": ".",
	}, model.Float64(5000))
	require.Len(t, rows, 1)

	require.NotNil(t, rows[0].Absolute)
	assert.Equal(t, 0.0, *rows[0].Absolute)
	require.NotNil(t, rows[0].Relative)
	assert.Equal(t, 0.0, *rows[0].Relative)
	assert.Equal(t, ".", rows[0].Original)
}

func TestParseSafety_NoPopulation(t *testing.T) {
	rows := ParseSafety(map[string]any{
		"0.0.0": float64(120),
	}, nil)
	require.Len(t, rows, 1)

	require.NotNil(t, rows[0].Absolute)
	assert.Nil(t, rows[0].Relative, "no denominator, no rate")
}

func TestParseSafety_UnknownCode(t *testing.T) {
	rows := ParseSafety(map[string]any{
		"9.9.9": float64(3),
	}, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "9.9.9", rows[0].Key)
	assert.Equal(t, "9.9.9", rows[0].TitleNl)
	assert.Equal(t, "misdrijven", rows[0].Unit)
}
