package testutil

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"github.com/Alturino/grocery/internal/repository"
)

func SeedUser(c context.Context, t *testing.T, q *repository.Queries) repository.User {
	t.Helper()

	user, err := q.InsertUser(c, repository.InsertUserParams{
		ID:       uuid.New(),
		Username: gofakeit.Username() + gofakeit.DigitN(6),
		Email:    gofakeit.DigitN(6) + gofakeit.Email(),
		Password: gofakeit.Password(true, true, true, false, false, 16),
	})
	if err != nil {
		t.Fatalf("failed seeding user with error: %s", err)
	}
	return user
}

func SeedSubcategory(c context.Context, t *testing.T, q *repository.Queries) repository.Subcategory {
	t.Helper()

	categoryName := gofakeit.ProductCategory() + " " + gofakeit.DigitN(6)
	category, err := q.InsertCategory(c, repository.InsertCategoryParams{
		ID:   uuid.New(),
		Name: categoryName,
		Slug: slug.Make(categoryName),
	})
	if err != nil {
		t.Fatalf("failed seeding category with error: %s", err)
	}

	subcategoryName := gofakeit.ProductMaterial() + " " + gofakeit.DigitN(6)
	subcategory, err := q.InsertSubcategory(c, repository.InsertSubcategoryParams{
		ID:         uuid.New(),
		CategoryID: category.ID,
		Name:       subcategoryName,
		Slug:       slug.Make(subcategoryName),
	})
	if err != nil {
		t.Fatalf("failed seeding subcategory with error: %s", err)
	}
	return subcategory
}

func SeedProduct(
	c context.Context,
	t *testing.T,
	q *repository.Queries,
	subcategoryID uuid.UUID,
	price decimal.Decimal,
) repository.Product {
	t.Helper()

	name := gofakeit.ProductName() + " " + gofakeit.DigitN(6)
	product, err := q.InsertProduct(c, repository.InsertProductParams{
		ID:            uuid.New(),
		SubcategoryID: subcategoryID,
		Name:          name,
		Slug:          slug.Make(name),
		Price:         repository.DecimalToNumeric(price),
	})
	if err != nil {
		t.Fatalf("failed seeding product with error: %s", err)
	}
	return product
}
