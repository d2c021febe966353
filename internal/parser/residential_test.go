package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/locintel/internal/model"
)

func TestParseResidential(t *testing.T) {
	houses := []model.ReferenceHouse{
		{Price: model.Float64(400000), LivingArea: model.Float64(100)},
		{Price: model.Float64(600000), PricePerM2: model.Float64(5000)},
		{Price: nil, LivingArea: model.Float64(80)}, // skipped, not zeroed
	}

	data := ParseResidential("GM0363", houses)

	assert.Equal(t, "GM0363", data.MunicipalityCode)
	require.NotNil(t, data.AveragePrice)
	assert.InDelta(t, 500000.0, *data.AveragePrice, 1e-6)

	// Per-m2 averages the explicit value and the derived 400000/100.
	require.NotNil(t, data.AveragePricePerM2)
	assert.InDelta(t, 4500.0, *data.AveragePricePerM2, 1e-6)

	require.Len(t, data.Rows, 3)
	count := data.Rows[0]
	assert.Equal(t, "aantal_referentiewoningen", count.Key)
	require.NotNil(t, count.Absolute)
	assert.Equal(t, 3.0, *count.Absolute)
}

func TestParseResidential_Empty(t *testing.T) {
	data := ParseResidential("GM0363", nil)

	assert.Nil(t, data.AveragePrice)
	assert.Nil(t, data.AveragePricePerM2)
	require.Len(t, data.Rows, 1, "only the count row without averages")
	require.NotNil(t, data.Rows[0].Absolute)
	assert.Equal(t, 0.0, *data.Rows[0].Absolute)
}
