package portalapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavopprado/ecommerce-fgv/internal/ordering"
)

func TestCreateOrderPayloadLineItems(t *testing.T) {
	payload := createOrderPayload{
		Itens: []catalogItemPayload{
			{Code: "P1", Description: "Notebook stand", Quantity: 2, Cost: 75},
			{Code: "P2", Description: "Mouse pad", Quantity: 1, Cost: 50},
		},
	}

	items := payload.lineItems()
	require.Len(t, items, 2)
	assert.Equal(t, ordering.LineItem{
		Code: "P1", Description: "Notebook stand", Quantity: 2, UnitPrice: 75,
	}, items[0])
	assert.Equal(t, ordering.LineItem{
		Code: "P2", Description: "Mouse pad", Quantity: 1, UnitPrice: 50,
	}, items[1])

	assert.Empty(t, createOrderPayload{}.lineItems())
}

func TestParseInstallments(t *testing.T) {
	assert.Equal(t, 3, parseInstallments("3"))
	assert.Equal(t, 3, parseInstallments(float64(3)))
	assert.Equal(t, 1, parseInstallments("abc"))
	assert.Equal(t, 1, parseInstallments(nil))
	assert.Equal(t, 10, parseInstallments("10"))
}
