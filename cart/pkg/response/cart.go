package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Alturino/grocery/internal/repository"
)

type CartItem struct {
	ItemID      uuid.UUID       `json:"item_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int32           `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
	AddedAt     time.Time       `json:"added_at"`
}

type Cart struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	Items      []CartItem      `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	TotalItems int64           `json:"total_items"`
}

// NewCart builds the cart view. Line totals and cart totals are derived here on
// every call and nowhere else.
func NewCart(id, userID uuid.UUID, items []CartItem) Cart {
	cart := Cart{
		ID:         id,
		UserID:     userID,
		Items:      make([]CartItem, 0, len(items)),
		TotalPrice: decimal.Zero,
	}
	for _, item := range items {
		item.LineTotal = item.UnitPrice.Mul(decimal.NewFromInt32(item.Quantity))
		cart.TotalPrice = cart.TotalPrice.Add(item.LineTotal)
		cart.TotalItems += int64(item.Quantity)
		cart.Items = append(cart.Items, item)
	}
	return cart
}

func NewCartItem(row repository.FindCartItemsByCartIdRow) CartItem {
	return CartItem{
		ItemID:      row.ID,
		ProductID:   row.ProductID,
		ProductName: row.ProductName,
		UnitPrice:   repository.NumericToDecimal(row.UnitPrice),
		Quantity:    row.Quantity,
		AddedAt:     row.CreatedAt.Time,
	}
}

func NewCartItems(rows []repository.FindCartItemsByCartIdRow) []CartItem {
	items := make([]CartItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, NewCartItem(row))
	}
	return items
}
