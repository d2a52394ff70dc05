package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/Alturino/grocery/cart/pkg/response"
	"github.com/Alturino/grocery/internal/config"
	inErrors "github.com/Alturino/grocery/internal/errors"
	"github.com/Alturino/grocery/internal/repository"
	"github.com/Alturino/grocery/internal/testutil"
)

type cartServiceSuite struct {
	suite.Suite

	c           context.Context
	pool        *pgxpool.Pool
	queries     *repository.Queries
	service     *CartService
	subcategory repository.Subcategory
}

func TestCartServiceSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container backed tests in short mode")
	}
	suite.Run(t, new(cartServiceSuite))
}

func (s *cartServiceSuite) SetupSuite() {
	s.c = testutil.Context(s.T())
	s.pool = testutil.StartPostgres(s.c, s.T())
	s.queries = repository.New(s.pool)
	s.service = NewCartService(s.pool, s.queries, config.Cart{MaxRetries: 5})
	s.subcategory = testutil.SeedSubcategory(s.c, s.T(), s.queries)
}

func (s *cartServiceSuite) product(price string) repository.Product {
	return testutil.SeedProduct(s.c, s.T(), s.queries, s.subcategory.ID, decimal.RequireFromString(price))
}

func (s *cartServiceSuite) user() uuid.UUID {
	return testutil.SeedUser(s.c, s.T(), s.queries).ID
}

func (s *cartServiceSuite) TestGetOrCreateCartIsIdempotent() {
	userID := s.user()

	first, err := s.service.GetOrCreateCart(s.c, userID)
	s.Require().NoError(err)
	second, err := s.service.GetOrCreateCart(s.c, userID)
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.Equal(userID, second.UserID)
	s.Empty(second.Items)
	s.True(decimal.Zero.Equal(second.TotalPrice))
	s.Zero(second.TotalItems)
}

func (s *cartServiceSuite) TestAddItemMergesQuantity() {
	userID := s.user()
	product := s.product("12.50")

	_, err := s.service.AddItem(s.c, userID, product.ID, 2)
	s.Require().NoError(err)
	cart, err := s.service.AddItem(s.c, userID, product.ID, 3)
	s.Require().NoError(err)

	s.Require().Len(cart.Items, 1)
	s.Equal(int32(5), cart.Items[0].Quantity)
	s.Equal(product.ID, cart.Items[0].ProductID)
	s.Equal(product.Name, cart.Items[0].ProductName)
	s.True(decimal.RequireFromString("62.50").Equal(cart.TotalPrice))
}

func (s *cartServiceSuite) TestAddItemErrors() {
	userID := s.user()
	product := s.product("1.00")

	testCases := []struct {
		name        string
		productID   uuid.UUID
		quantity    int32
		expectedErr error
	}{
		{name: "zero quantity", productID: product.ID, quantity: 0, expectedErr: inErrors.ErrInvalidArgument},
		{name: "negative quantity", productID: product.ID, quantity: -1, expectedErr: inErrors.ErrInvalidArgument},
		{name: "unknown product", productID: uuid.New(), quantity: 1, expectedErr: inErrors.ErrNotFound},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.AddItem(s.c, userID, tc.productID, tc.quantity)
			s.ErrorIs(err, tc.expectedErr)
		})
	}

	cart, err := s.service.GetOrCreateCart(s.c, userID)
	s.Require().NoError(err)
	s.Empty(cart.Items)
}

func (s *cartServiceSuite) TestSetItemQuantity() {
	userID := s.user()
	product := s.product("3.00")

	cart, err := s.service.AddItem(s.c, userID, product.ID, 1)
	s.Require().NoError(err)
	itemID := cart.Items[0].ItemID

	cart, err = s.service.SetItemQuantity(s.c, userID, itemID, 4)
	s.Require().NoError(err)
	s.Require().Len(cart.Items, 1)
	s.Equal(int32(4), cart.Items[0].Quantity)
	s.True(decimal.RequireFromString("12.00").Equal(cart.Items[0].LineTotal))

	_, err = s.service.SetItemQuantity(s.c, userID, itemID, -1)
	s.ErrorIs(err, inErrors.ErrInvalidArgument)

	cart, err = s.service.SetItemQuantity(s.c, userID, itemID, 0)
	s.Require().NoError(err)
	s.Empty(cart.Items)

	var count int
	err = s.pool.QueryRow(s.c, "SELECT count(*) FROM cart_items WHERE id = $1", itemID).Scan(&count)
	s.Require().NoError(err)
	s.Zero(count, "quantity zero must delete the row")

	_, err = s.service.SetItemQuantity(s.c, userID, itemID, 2)
	s.ErrorIs(err, inErrors.ErrNotFound)
}

func (s *cartServiceSuite) TestOtherUsersItemIsNotFound() {
	owner, other := s.user(), s.user()
	product := s.product("5.00")

	cart, err := s.service.AddItem(s.c, owner, product.ID, 2)
	s.Require().NoError(err)
	itemID := cart.Items[0].ItemID

	_, err = s.service.SetItemQuantity(s.c, other, itemID, 7)
	s.ErrorIs(err, inErrors.ErrNotFound)
	_, err = s.service.SetItemQuantity(s.c, other, itemID, 0)
	s.ErrorIs(err, inErrors.ErrNotFound)
	_, err = s.service.RemoveItem(s.c, other, itemID)
	s.ErrorIs(err, inErrors.ErrNotFound)

	cart, err = s.service.GetOrCreateCart(s.c, owner)
	s.Require().NoError(err)
	s.Require().Len(cart.Items, 1)
	s.Equal(int32(2), cart.Items[0].Quantity)
}

func (s *cartServiceSuite) TestRemoveItem() {
	userID := s.user()
	apple, pear := s.product("1.10"), s.product("2.20")

	_, err := s.service.AddItem(s.c, userID, apple.ID, 1)
	s.Require().NoError(err)
	cart, err := s.service.AddItem(s.c, userID, pear.ID, 1)
	s.Require().NoError(err)
	s.Require().Len(cart.Items, 2)

	cart, err = s.service.RemoveItem(s.c, userID, cart.Items[0].ItemID)
	s.Require().NoError(err)
	s.Require().Len(cart.Items, 1)
	s.Equal(pear.ID, cart.Items[0].ProductID)

	_, err = s.service.RemoveItem(s.c, userID, uuid.New())
	s.ErrorIs(err, inErrors.ErrNotFound)
}

func (s *cartServiceSuite) TestTotals() {
	userID := s.user()
	expensive, cheap := s.product("100.00"), s.product("49.99")

	_, err := s.service.AddItem(s.c, userID, expensive.ID, 2)
	s.Require().NoError(err)
	actual, err := s.service.AddItem(s.c, userID, cheap.ID, 1)
	s.Require().NoError(err)

	expected := response.Cart{
		ID:     actual.ID,
		UserID: userID,
		Items: []response.CartItem{
			{
				ProductID:   expensive.ID,
				ProductName: expensive.Name,
				UnitPrice:   decimal.RequireFromString("100.00"),
				Quantity:    2,
				LineTotal:   decimal.RequireFromString("200.00"),
			},
			{
				ProductID:   cheap.ID,
				ProductName: cheap.Name,
				UnitPrice:   decimal.RequireFromString("49.99"),
				Quantity:    1,
				LineTotal:   decimal.RequireFromString("49.99"),
			},
		},
		TotalPrice: decimal.RequireFromString("249.99"),
		TotalItems: 3,
	}
	opts := cmp.Options{
		cmpopts.IgnoreFields(response.CartItem{}, "ItemID", "AddedAt"),
		cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
	}
	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		s.Failf("cart mismatch", "(-expected +actual):\n%s", diff)
	}
}

func (s *cartServiceSuite) TestClearCart() {
	userID := s.user()
	for range 3 {
		_, err := s.service.AddItem(s.c, userID, s.product("9.99").ID, 1)
		s.Require().NoError(err)
	}

	cart, err := s.service.ClearCart(s.c, userID)
	s.Require().NoError(err)
	s.Empty(cart.Items)
	s.True(decimal.Zero.Equal(cart.TotalPrice))
	s.Zero(cart.TotalItems)

	again, err := s.service.GetOrCreateCart(s.c, userID)
	s.Require().NoError(err)
	s.Equal(cart.ID, again.ID, "clearing keeps the cart itself")
	s.Empty(again.Items)
}

func (s *cartServiceSuite) TestConcurrentAddItem() {
	const n = 20
	userID := s.user()
	product := s.product("0.50")

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.AddItem(s.c, userID, product.ID, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.NoError(err)
	}

	cart, err := s.service.GetOrCreateCart(s.c, userID)
	s.Require().NoError(err)
	s.Require().Len(cart.Items, 1)
	s.Equal(int32(n), cart.Items[0].Quantity)
	s.Equal(int64(n), cart.TotalItems)
	s.True(decimal.RequireFromString("10.00").Equal(cart.TotalPrice))
}
