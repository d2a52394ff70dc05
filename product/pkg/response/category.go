package response

import (
	"github.com/google/uuid"

	"github.com/Alturino/grocery/internal/repository"
)

type Subcategory struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	Image *string   `json:"image"`
}

type Category struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	Image         *string       `json:"image"`
	Subcategories []Subcategory `json:"subcategories"`
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func NewSubcategory(s repository.Subcategory) Subcategory {
	return Subcategory{
		ID:    s.ID,
		Name:  s.Name,
		Slug:  s.Slug,
		Image: nullable(repository.TextToString(s.Image)),
	}
}

// NewCategories groups subcategories under their categories keeping the order
// of both inputs.
func NewCategories(categories []repository.Category, subcategories []repository.Subcategory) []Category {
	byCategory := make(map[uuid.UUID][]Subcategory, len(categories))
	for _, s := range subcategories {
		byCategory[s.CategoryID] = append(byCategory[s.CategoryID], NewSubcategory(s))
	}

	result := make([]Category, 0, len(categories))
	for _, c := range categories {
		subs := byCategory[c.ID]
		if subs == nil {
			subs = []Subcategory{}
		}
		result = append(result, Category{
			ID:            c.ID,
			Name:          c.Name,
			Slug:          c.Slug,
			Image:         nullable(repository.TextToString(c.Image)),
			Subcategories: subs,
		})
	}
	return result
}
