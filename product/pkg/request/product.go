package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	SubcategoryID uuid.UUID       `validate:"required"                   json:"subcategory_id"`
	Name          string          `validate:"required,min=3,max=200"     json:"name"`
	Slug          string          `validate:"omitempty,max=250,slug"     json:"slug"`
	Price         decimal.Decimal `validate:"price"                      json:"price"`
}

type Category struct {
	Name string `validate:"required,min=3,max=200" json:"name"`
	Slug string `validate:"omitempty,max=250,slug" json:"slug"`
}

type Subcategory struct {
	Name string `validate:"required,min=3,max=200" json:"name"`
	Slug string `validate:"omitempty,max=250,slug" json:"slug"`
}
