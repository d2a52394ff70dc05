package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/grocery/cart/internal/otel"
	"github.com/Alturino/grocery/cart/pkg/response"
	"github.com/Alturino/grocery/internal/config"
	inErrors "github.com/Alturino/grocery/internal/errors"
	"github.com/Alturino/grocery/internal/log"
	"github.com/Alturino/grocery/internal/metrics"
	inOtel "github.com/Alturino/grocery/internal/otel"
	"github.com/Alturino/grocery/internal/repository"
)

const (
	operationGetOrCreate = "get_or_create"
	operationAddItem     = "add_item"
	operationSetQuantity = "set_item_quantity"
	operationRemoveItem  = "remove_item"
	operationClear       = "clear"
)

type CartService struct {
	pool       *pgxpool.Pool
	queries    *repository.Queries
	maxRetries int
}

func NewCartService(pool *pgxpool.Pool, queries *repository.Queries, cfg config.Cart) *CartService {
	return &CartService{pool: pool, queries: queries, maxRetries: cfg.MaxRetries}
}

// mutation runs against the caller's cart while its row is locked.
type mutation func(c context.Context, q *repository.Queries, cart repository.Cart) error

func (s *CartService) GetOrCreateCart(c context.Context, userID uuid.UUID) (response.Cart, error) {
	c, span := otel.Tracer.Start(
		c,
		"CartService GetOrCreateCart",
		trace.WithAttributes(attribute.String(log.KeyUserID, userID.String())),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService GetOrCreateCart").
		Str(log.KeyUserID, userID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "getting or creating cart").Logger()
	logger.Info().Msg("getting or creating cart")
	c = logger.WithContext(c)
	cart, err := s.withCart(c, operationGetOrCreate, userID, false, nil)
	if err != nil {
		err = fmt.Errorf("failed getting or creating cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Str(log.KeyCartID, cart.ID.String()).Msg("got cart")

	return cart, nil
}

func (s *CartService) AddItem(
	c context.Context,
	userID uuid.UUID,
	productID uuid.UUID,
	quantity int32,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(
		c,
		"CartService AddItem",
		trace.WithAttributes(
			attribute.String(log.KeyUserID, userID.String()),
			attribute.String(log.KeyProductID, productID.String()),
			attribute.Int(log.KeyCartItemQuantity, int(quantity)),
		),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddItem").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProductID, productID.String()).
		Int32(log.KeyCartItemQuantity, quantity).
		Logger()

	if quantity < 1 {
		err := inErrors.InvalidArgument("quantity=%d must be at least 1", quantity)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		metrics.CartMutations.WithLabelValues(operationAddItem, metrics.OutcomeFailure).Inc()
		return response.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "adding item to cart").Logger()
	logger.Info().Msg("adding item to cart")
	c = logger.WithContext(c)
	cart, err := s.withCart(c, operationAddItem, userID, true,
		func(c context.Context, q *repository.Queries, cart repository.Cart) error {
			item, err := q.UpsertCartItem(c, repository.UpsertCartItemParams{
				ID:        uuid.New(),
				CartID:    cart.ID,
				ProductID: productID,
				Quantity:  quantity,
			})
			if err != nil {
				return fmt.Errorf("failed upserting productId=%s with error=%w", productID.String(), err)
			}
			zerolog.Ctx(c).Debug().
				Str(log.KeyCartItemID, item.ID.String()).
				Int32(log.KeyCartItemQuantity, item.Quantity).
				Msg("upserted cart item")
			return nil
		},
	)
	if err != nil {
		err = fmt.Errorf("failed adding item to cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("added item to cart")

	return cart, nil
}

func (s *CartService) SetItemQuantity(
	c context.Context,
	userID uuid.UUID,
	itemID uuid.UUID,
	quantity int32,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(
		c,
		"CartService SetItemQuantity",
		trace.WithAttributes(
			attribute.String(log.KeyUserID, userID.String()),
			attribute.String(log.KeyCartItemID, itemID.String()),
			attribute.Int(log.KeyCartItemQuantity, int(quantity)),
		),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService SetItemQuantity").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyCartItemID, itemID.String()).
		Int32(log.KeyCartItemQuantity, quantity).
		Logger()

	if quantity < 0 {
		err := inErrors.InvalidArgument("quantity=%d must not be negative", quantity)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		metrics.CartMutations.WithLabelValues(operationSetQuantity, metrics.OutcomeFailure).Inc()
		return response.Cart{}, err
	}

	var fn mutation
	if quantity == 0 {
		logger = logger.With().Str(log.KeyProcess, "deleting cart item").Logger()
		fn = deleteItem(itemID, userID)
	} else {
		logger = logger.With().Str(log.KeyProcess, "updating cart item quantity").Logger()
		fn = func(c context.Context, q *repository.Queries, _ repository.Cart) error {
			_, err := q.UpdateCartItemQuantity(c, repository.UpdateCartItemQuantityParams{
				Quantity: quantity,
				ID:       itemID,
				UserID:   userID,
			})
			if err != nil {
				return fmt.Errorf("failed updating cartItemId=%s with error=%w", itemID.String(), err)
			}
			return nil
		}
	}

	logger.Info().Msg("setting cart item quantity")
	c = logger.WithContext(c)
	cart, err := s.withCart(c, operationSetQuantity, userID, true, fn)
	if err != nil {
		err = fmt.Errorf("failed setting cart item quantity with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("set cart item quantity")

	return cart, nil
}

func (s *CartService) RemoveItem(c context.Context, userID uuid.UUID, itemID uuid.UUID) (response.Cart, error) {
	c, span := otel.Tracer.Start(
		c,
		"CartService RemoveItem",
		trace.WithAttributes(
			attribute.String(log.KeyUserID, userID.String()),
			attribute.String(log.KeyCartItemID, itemID.String()),
		),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveItem").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyCartItemID, itemID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "removing cart item").Logger()
	logger.Info().Msg("removing cart item")
	c = logger.WithContext(c)
	cart, err := s.withCart(c, operationRemoveItem, userID, true, deleteItem(itemID, userID))
	if err != nil {
		err = fmt.Errorf("failed removing cart item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("removed cart item")

	return cart, nil
}

func (s *CartService) ClearCart(c context.Context, userID uuid.UUID) (response.Cart, error) {
	c, span := otel.Tracer.Start(
		c,
		"CartService ClearCart",
		trace.WithAttributes(attribute.String(log.KeyUserID, userID.String())),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearCart").
		Str(log.KeyUserID, userID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Info().Msg("clearing cart")
	c = logger.WithContext(c)
	cart, err := s.withCart(c, operationClear, userID, true,
		func(c context.Context, q *repository.Queries, cart repository.Cart) error {
			deleted, err := q.DeleteCartItemsByCartId(c, cart.ID)
			if err != nil {
				return fmt.Errorf("failed deleting items of cartId=%s with error=%w", cart.ID.String(), err)
			}
			zerolog.Ctx(c).Debug().Int64("deleted", deleted).Msg("deleted cart items")
			return nil
		},
	)
	if err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("cleared cart")

	return cart, nil
}

func deleteItem(itemID uuid.UUID, userID uuid.UUID) mutation {
	return func(c context.Context, q *repository.Queries, _ repository.Cart) error {
		deleted, err := q.DeleteCartItem(c, repository.DeleteCartItemParams{ID: itemID, UserID: userID})
		if err != nil {
			return fmt.Errorf("failed deleting cartItemId=%s with error=%w", itemID.String(), err)
		}
		if deleted == 0 {
			return inErrors.NotFound(fmt.Errorf("cartItemId=%s not found in cart", itemID.String()))
		}
		return nil
	}
}

// withCart makes sure the caller's cart exists, optionally locks it and
// applies fn, then reads the items back in the same transaction. Lock
// contention is retried up to maxRetries times.
func (s *CartService) withCart(
	c context.Context,
	operation string,
	userID uuid.UUID,
	lock bool,
	fn mutation,
) (cart response.Cart, err error) {
	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "CartService withCart").Logger()
	defer func() {
		metrics.CartMutations.WithLabelValues(operation, metrics.Outcome(err)).Inc()
	}()

	attempt := 0
	return repository.WithRetry(c, s.maxRetries, func(c context.Context) (response.Cart, error) {
		if attempt > 0 {
			metrics.CartConflictRetries.Inc()
		}
		attempt++

		return repository.WithTx(c, s.pool, s.queries, func(q *repository.Queries) (response.Cart, error) {
			l := logger.With().Str(log.KeyProcess, "upserting cart").Logger()
			l.Debug().Msg("upserting cart")
			cart, err := q.UpsertCart(c, repository.UpsertCartParams{ID: uuid.New(), UserID: userID})
			if err != nil {
				return response.Cart{}, fmt.Errorf("failed upserting cart with error=%w", err)
			}
			l = l.With().Str(log.KeyCartID, cart.ID.String()).Logger()

			if lock {
				l = l.With().Str(log.KeyProcess, "locking cart").Logger()
				l.Debug().Msg("locking cart")
				cart, err = q.LockCartByUserId(c, userID)
				if err != nil {
					return response.Cart{}, fmt.Errorf("failed locking cart with error=%w", err)
				}
			}

			if fn != nil {
				if err := fn(l.WithContext(c), q, cart); err != nil {
					return response.Cart{}, err
				}
			}

			l = l.With().Str(log.KeyProcess, "finding cart items").Logger()
			l.Debug().Msg("finding cart items")
			rows, err := q.FindCartItemsByCartId(c, cart.ID)
			if err != nil {
				return response.Cart{}, fmt.Errorf("failed finding cart items with error=%w", err)
			}

			return response.NewCart(cart.ID, cart.UserID, response.NewCartItems(rows)), nil
		})
	})
}
