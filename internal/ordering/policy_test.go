package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotal(t *testing.T) {
	total, err := ComputeTotal([]LineItem{
		{Code: "P1", Description: "Notebook stand", Quantity: 2, UnitPrice: 50},
		{Code: "P2", Description: "Mouse pad", Quantity: 1, UnitPrice: 30},
	})
	require.NoError(t, err)
	assert.InDelta(t, 130.0, total, 0.001)
}

func TestComputeTotalEmpty(t *testing.T) {
	_, err := ComputeTotal(nil)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestNormalizeInstallments(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		total     float64
		want      int
	}{
		{"under floor forces single", 5, 50, 1},
		{"above max clamps to max", 15, 500, 10},
		{"zero defaults to one", 0, 500, 1},
		{"negative defaults to one", -3, 500, 1},
		{"valid passes through", 4, 200, 4},
		{"exactly at floor keeps requested", 3, 100, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeInstallments(tt.requested, tt.total))
		})
	}
}

func TestValidateLineItems(t *testing.T) {
	valid := []LineItem{{Code: "P1", Description: "Desk lamp", Quantity: 1, UnitPrice: 79.9}}
	require.NoError(t, ValidateLineItems(valid))

	err := ValidateLineItems([]LineItem{{Code: "  ", Description: "Desk lamp", Quantity: 1, UnitPrice: 10}})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "item #1")
	assert.Contains(t, err.Error(), "product code")

	err = ValidateLineItems([]LineItem{
		{Code: "P1", Description: "Desk lamp", Quantity: 1, UnitPrice: 10},
		{Code: "P2", Description: "Chair", Quantity: 0, UnitPrice: 10},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item #2")
	assert.Contains(t, err.Error(), "quantity")

	err = ValidateLineItems([]LineItem{{Code: "P1", Description: "Desk lamp", Quantity: 1, UnitPrice: -1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unit price")
}
