package controller

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/grocery/cart/internal/otel"
	"github.com/Alturino/grocery/cart/internal/service"
	"github.com/Alturino/grocery/cart/pkg/request"
	"github.com/Alturino/grocery/cart/pkg/response"
	"github.com/Alturino/grocery/internal/auth"
	inHttp "github.com/Alturino/grocery/internal/http"
	"github.com/Alturino/grocery/internal/log"
	inOtel "github.com/Alturino/grocery/internal/otel"
)

type CartController struct {
	service *service.CartService
}

func AttachCartController(router *mux.Router, service *service.CartService) {
	controller := CartController{service: service}

	r := router.PathPrefix("/cart").Subrouter()
	r.HandleFunc("", controller.GetCart).Methods(http.MethodGet)
	r.HandleFunc("", controller.ClearCart).Methods(http.MethodDelete)
	r.HandleFunc("/items", controller.AddItem).Methods(http.MethodPost)
	r.HandleFunc("/items/{itemId}", controller.SetItemQuantity).Methods(http.MethodPut)
	r.HandleFunc("/items/{itemId}", controller.RemoveItem).Methods(http.MethodDelete)
}

func (t CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController GetCart")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "CartController GetCart").Logger()

	logger = logger.With().Str(log.KeyProcess, "getting userId from jwtToken").Logger()
	userID, err := auth.UserIDFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from jwtToken with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyUserID, userID.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "getting cart").Logger()
	logger.Info().Msg("getting cart")
	c = logger.WithContext(c)
	cart, err := t.service.GetOrCreateCart(c, userID)
	if err != nil {
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("got cart")

	writeCart(c, w, "successfully got cart", cart)
}

func (t CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "CartController AddItem").Logger()

	logger = logger.With().Str(log.KeyProcess, "getting userId from jwtToken").Logger()
	userID, err := auth.UserIDFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from jwtToken with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyUserID, userID.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.AddItem{}
	if err := inHttp.DecodeJSON(r, &reqBody); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Any(log.KeyRequestBody, reqBody).Logger()
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "adding item").Logger()
	logger.Info().Msg("adding item")
	c = logger.WithContext(c)
	cart, err := t.service.AddItem(c, userID, reqBody.ProductID, reqBody.QuantityOrDefault())
	if err != nil {
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("added item")

	writeCart(c, w, "successfully added item to cart", cart)
}

func (t CartController) SetItemQuantity(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController SetItemQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "CartController SetItemQuantity").Logger()

	logger = logger.With().Str(log.KeyProcess, "getting userId from jwtToken").Logger()
	userID, err := auth.UserIDFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from jwtToken with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyUserID, userID.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "validating itemId").Logger()
	itemID, err := inHttp.PathUUID(r, "itemId")
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyCartItemID, itemID.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.SetItemQuantity{}
	if err := inHttp.DecodeJSON(r, &reqBody); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "setting item quantity").Logger()
	logger.Info().Msg("setting item quantity")
	c = logger.WithContext(c)
	cart, err := t.service.SetItemQuantity(c, userID, itemID, *reqBody.Quantity)
	if err != nil {
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("set item quantity")

	writeCart(c, w, "successfully updated cart item", cart)
}

func (t CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "CartController RemoveItem").Logger()

	logger = logger.With().Str(log.KeyProcess, "getting userId from jwtToken").Logger()
	userID, err := auth.UserIDFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from jwtToken with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyUserID, userID.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "validating itemId").Logger()
	itemID, err := inHttp.PathUUID(r, "itemId")
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	logger = logger.With().
		Str(log.KeyProcess, "removing item").
		Str(log.KeyCartItemID, itemID.String()).
		Logger()
	logger.Info().Msg("removing item")
	c = logger.WithContext(c)
	cart, err := t.service.RemoveItem(c, userID, itemID)
	if err != nil {
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("removed item")

	writeCart(c, w, "successfully removed cart item", cart)
}

func (t CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "CartController ClearCart").Logger()

	logger = logger.With().Str(log.KeyProcess, "getting userId from jwtToken").Logger()
	userID, err := auth.UserIDFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from jwtToken with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	logger = logger.With().
		Str(log.KeyProcess, "clearing cart").
		Str(log.KeyUserID, userID.String()).
		Logger()
	logger.Info().Msg("clearing cart")
	c = logger.WithContext(c)
	cart, err := t.service.ClearCart(c, userID)
	if err != nil {
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("cleared cart")

	writeCart(c, w, "successfully cleared cart", cart)
}

func writeCart(c context.Context, w http.ResponseWriter, message string, cart response.Cart) {
	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     inHttp.StatusSuccess,
		"statusCode": http.StatusOK,
		"message":    message,
		"data":       map[string]interface{}{"cart": cart},
	})
}
