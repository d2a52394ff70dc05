package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Alturino/grocery/internal/repository"
)

type Product struct {
	ID            uuid.UUID       `json:"id"`
	SubcategoryID uuid.UUID       `json:"subcategory_id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	Category      string          `json:"category"`
	Subcategory   string          `json:"subcategory"`
	Price         decimal.Decimal `json:"price"`
	ImageOriginal string          `json:"image_original,omitempty"`
	ImageLarge    string          `json:"image_large,omitempty"`
	ImageMedium   string          `json:"image_medium,omitempty"`
	ImageSmall    string          `json:"image_small,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ImagePaths lists the stored image paths, original first. Missing ones are
// skipped.
func (p Product) ImagePaths() []string {
	images := make([]string, 0, 4)
	for _, image := range []string{p.ImageOriginal, p.ImageLarge, p.ImageMedium, p.ImageSmall} {
		if image != "" {
			images = append(images, image)
		}
	}
	return images
}

// View is the serialized shape with the derived image list.
type View struct {
	Product
	Images []string `json:"images"`
}

func (p Product) View() View {
	return View{Product: p, Images: p.ImagePaths()}
}

func NewProduct(row repository.FindProductByIdRow) Product {
	return Product{
		ID:            row.ID,
		SubcategoryID: row.SubcategoryID,
		Name:          row.Name,
		Slug:          row.Slug,
		Category:      row.CategoryName,
		Subcategory:   row.SubcategoryName,
		Price:         repository.NumericToDecimal(row.Price),
		ImageOriginal: repository.TextToString(row.ImageOriginal),
		ImageLarge:    repository.TextToString(row.ImageLarge),
		ImageMedium:   repository.TextToString(row.ImageMedium),
		ImageSmall:    repository.TextToString(row.ImageSmall),
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
}

func NewProducts(rows []repository.FindProductsRow) []Product {
	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, NewProduct(repository.FindProductByIdRow(row)))
	}
	return products
}

func Views(products []Product) []View {
	views := make([]View, 0, len(products))
	for _, p := range products {
		views = append(views, p.View())
	}
	return views
}
