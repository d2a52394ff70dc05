package controller

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	inHttp "github.com/Alturino/grocery/internal/http"
	"github.com/Alturino/grocery/internal/log"
	inOtel "github.com/Alturino/grocery/internal/otel"
	"github.com/Alturino/grocery/product/internal/otel"
	"github.com/Alturino/grocery/product/internal/service"
	"github.com/Alturino/grocery/product/pkg/request"
)

type CategoryController struct {
	service *service.CategoryService
}

func AttachCategoryController(public *mux.Router, authed *mux.Router, service *service.CategoryService) {
	controller := CategoryController{service: service}

	authed.HandleFunc("/categories", controller.InsertCategory).Methods(http.MethodPost)
	authed.HandleFunc("/categories/{categoryId}/subcategories", controller.InsertSubcategory).Methods(http.MethodPost)

	public.HandleFunc("/categories", controller.FindCategories).Methods(http.MethodGet)
}

func (t CategoryController) FindCategories(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CategoryController FindCategories")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryController FindCategories").
		Str(log.KeyProcess, "finding categories").
		Logger()

	c = logger.WithContext(c)
	categories, err := t.service.FindCategories(c)
	if err != nil {
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("found categories")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     inHttp.StatusSuccess,
		"statusCode": http.StatusOK,
		"message":    "successfully found categories",
		"data":       map[string]interface{}{"categories": categories},
	})
}

func (t CategoryController) InsertCategory(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CategoryController InsertCategory")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "CategoryController InsertCategory").Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	reqBody := request.Category{}
	if err := inHttp.DecodeJSON(r, &reqBody); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Any(log.KeyRequestBody, reqBody).Logger()

	logger = logger.With().Str(log.KeyProcess, "inserting category").Logger()
	c = logger.WithContext(c)
	category, err := t.service.InsertCategory(c, reqBody)
	if err != nil {
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Str(log.KeyCategoryID, category.ID.String()).Msg("inserted category")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     inHttp.StatusSuccess,
		"statusCode": http.StatusCreated,
		"message":    "successfully inserted category",
		"data":       map[string]interface{}{"category": category},
	})
}

func (t CategoryController) InsertSubcategory(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CategoryController InsertSubcategory")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "CategoryController InsertSubcategory").Logger()

	logger = logger.With().Str(log.KeyProcess, "validating categoryId").Logger()
	categoryID, err := inHttp.PathUUID(r, "categoryId")
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyCategoryID, categoryID.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	reqBody := request.Subcategory{}
	if err := inHttp.DecodeJSON(r, &reqBody); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Any(log.KeyRequestBody, reqBody).Logger()

	logger = logger.With().Str(log.KeyProcess, "inserting subcategory").Logger()
	c = logger.WithContext(c)
	subcategory, err := t.service.InsertSubcategory(c, categoryID, reqBody)
	if err != nil {
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Str(log.KeySlug, subcategory.Slug).Msg("inserted subcategory")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     inHttp.StatusSuccess,
		"statusCode": http.StatusCreated,
		"message":    "successfully inserted subcategory",
		"data":       map[string]interface{}{"subcategory": subcategory},
	})
}
