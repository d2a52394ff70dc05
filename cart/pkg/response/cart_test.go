package response

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewCart(t *testing.T) {
	cartID, userID := uuid.New(), uuid.New()

	testCases := []struct {
		name               string
		items              []CartItem
		expectedTotalPrice decimal.Decimal
		expectedTotalItems int64
		expectedLineTotals []decimal.Decimal
	}{
		{
			name:               "empty cart has zero totals",
			items:              nil,
			expectedTotalPrice: decimal.Zero,
			expectedTotalItems: 0,
			expectedLineTotals: []decimal.Decimal{},
		},
		{
			name: "totals are summed over line totals",
			items: []CartItem{
				{ItemID: uuid.New(), UnitPrice: decimal.RequireFromString("100.00"), Quantity: 2},
				{ItemID: uuid.New(), UnitPrice: decimal.RequireFromString("49.99"), Quantity: 1},
			},
			expectedTotalPrice: decimal.RequireFromString("249.99"),
			expectedTotalItems: 3,
			expectedLineTotals: []decimal.Decimal{
				decimal.RequireFromString("200.00"),
				decimal.RequireFromString("49.99"),
			},
		},
		{
			name: "stale line total is recomputed",
			items: []CartItem{
				{ItemID: uuid.New(), UnitPrice: decimal.RequireFromString("0.10"), Quantity: 3, LineTotal: decimal.NewFromInt(99)},
			},
			expectedTotalPrice: decimal.RequireFromString("0.30"),
			expectedTotalItems: 3,
			expectedLineTotals: []decimal.Decimal{decimal.RequireFromString("0.30")},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := NewCart(cartID, userID, tc.items)

			assert.Equal(t, cartID, actual.ID)
			assert.Equal(t, userID, actual.UserID)
			assert.NotNil(t, actual.Items)
			assert.Truef(t, tc.expectedTotalPrice.Equal(actual.TotalPrice), "expected %s got %s", tc.expectedTotalPrice, actual.TotalPrice)
			assert.Equal(t, tc.expectedTotalItems, actual.TotalItems)
			assert.Len(t, actual.Items, len(tc.expectedLineTotals))
			for i, expected := range tc.expectedLineTotals {
				assert.Truef(t, expected.Equal(actual.Items[i].LineTotal), "expected %s got %s", expected, actual.Items[i].LineTotal)
			}
		})
	}
}
