package request

import (
	"github.com/google/uuid"
)

const DefaultQuantity int32 = 1

type AddItem struct {
	ProductID uuid.UUID `validate:"required"  json:"product_id"`
	Quantity  *int32    `validate:"omitempty" json:"quantity"`
}

// QuantityOrDefault returns the requested quantity, or DefaultQuantity when the
// body omitted it.
func (a AddItem) QuantityOrDefault() int32 {
	if a.Quantity == nil {
		return DefaultQuantity
	}
	return *a.Quantity
}

type SetItemQuantity struct {
	Quantity *int32 `validate:"required" json:"quantity"`
}
